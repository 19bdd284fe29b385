package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/joeydtaylor/steeze-plugin/pkg/unit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type callParams struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	entry   string
	file    string
	verbose bool
}

func newCallCommand() *cobra.Command {
	p := callParams{}
	cmd := &cobra.Command{
		Use:   "call <entrypoint>",
		Short: "Invoke one entry point with a request read from stdin or --file",
		Example: `  echo '{"function":"greet","input":{"name":"Ada"},"journeyData":{}}' | steeze-plugin call execute
  steeze-plugin call collect_data < /dev/null`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: entryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.stdin = cmd.InOrStdin()
			p.stdout = cmd.OutOrStdout()
			p.stderr = cmd.ErrOrStderr()
			p.entry = args[0]
			return runCall(p)
		},
	}
	cmd.Flags().StringVarP(&p.file, "file", "f", "", "read the request from `path` instead of stdin")
	cmd.Flags().BoolVarP(&p.verbose, "verbose", "v", false, "log dispatch decisions to stderr")
	return cmd
}

func runCall(p callParams) error {
	log := zap.NewNop()
	if p.verbose {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		log = zap.New(zapcore.NewCore(enc, zapcore.AddSync(p.stderr), zap.DebugLevel))
	}
	defer func() { _ = log.Sync() }()

	ep, ok := unit.New(unit.WithLogger(log)).EntryPoints()[p.entry]
	if !ok {
		return &exitError{code: 2, err: fmt.Errorf("unknown entry point %q (want one of %s)", p.entry, strings.Join(entryNames(), ", "))}
	}

	text, err := readRequest(p)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	out, err := ep(text)
	if err != nil {
		return &exitError{code: 1, err: err}
	}
	_, err = fmt.Fprintln(p.stdout, out)
	return err
}

func readRequest(p callParams) (string, error) {
	if p.file != "" {
		b, err := os.ReadFile(p.file)
		if err != nil {
			return "", fmt.Errorf("read request: %w", err)
		}
		return string(b), nil
	}
	if p.stdin == nil {
		return "", nil
	}
	b, err := io.ReadAll(p.stdin)
	if err != nil {
		return "", fmt.Errorf("read request: %w", err)
	}
	return string(b), nil
}

func entryNames() []string {
	names := make([]string, 0, 3)
	for n := range unit.EntryPoints() {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
