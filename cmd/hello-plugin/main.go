//go:build wasip1

// Command hello-plugin builds the execution unit as a WebAssembly module for
// Extism hosts. Each export reads the request from plugin input, writes the
// outcome to plugin output and returns non-zero only on a hard failure.
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o hello-plugin.wasm ./cmd/hello-plugin
package main

import (
	"github.com/extism/go-pdk"
	"github.com/joeydtaylor/steeze-plugin/pkg/unit"
)

func run(ep unit.EntryPoint) int32 {
	out, err := ep(pdk.InputString())
	if err != nil {
		pdk.SetError(err)
		return 1
	}
	pdk.OutputString(out)
	return 0
}

//go:wasmexport execute
func execute() int32 { return run(unit.Execute) }

//go:wasmexport validate_input
func validateInput() int32 { return run(unit.ValidateInput) }

//go:wasmexport collect_data
func collectData() int32 { return run(unit.CollectData) }

func main() {}
