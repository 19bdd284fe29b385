package core

import (
	"context"
	"errors"
	"net/http"
	"time"

	hmetrics "github.com/joeydtaylor/steeze-plugin/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-plugin/pkg/unit"
)

// RegisterUnit exposes every entry point of u under its own name.
func RegisterUnit(u *unit.Unit) {
	for name, ep := range u.EntryPoints() {
		Register(name, EntryHandler(name, ep))
	}
}

// EntryHandler adapts a unit entry point to an InprocHandler. Soft failures
// (success:false) are still 200; hard failures map to 400 for input the unit
// could not decode and 500 for output it could not encode.
func EntryHandler(name string, ep unit.EntryPoint) InprocHandler {
	return func(ctx context.Context, in []byte) ([]byte, int, error) {
		if err := ctx.Err(); err != nil {
			return nil, http.StatusGatewayTimeout, err
		}

		start := time.Now()
		out, err := ep(string(in))
		took := time.Since(start)

		if err != nil {
			var de *unit.DecodeError
			if errors.As(err, &de) {
				hmetrics.ObserveHardFailure(name, "decode", took)
				return nil, http.StatusBadRequest, err
			}
			hmetrics.ObserveHardFailure(name, "encode", took)
			return nil, http.StatusInternalServerError, err
		}

		observe(name, in, out, took)
		return []byte(out), http.StatusOK, nil
	}
}

func observe(name string, in []byte, out string, took time.Duration) {
	o, err := unit.ParseOutcome(out)
	if err != nil {
		return
	}
	action, _ := o.Action()
	hmetrics.ObserveInvocation(name, functionLabel(name, in), string(action), o.Success(), took)
}

// functionLabel names the handler an entry point ran. Unknown names collapse
// to "unknown" to keep the label bounded.
func functionLabel(entry string, in []byte) string {
	switch entry {
	case unit.EntryExecute:
		req, err := unit.DecodeRequest(string(in))
		if err != nil {
			return ""
		}
		return unit.ParseFunction(req.Function).String()
	case unit.EntryValidateInput:
		return unit.FunctionValidate.String()
	}
	return ""
}
