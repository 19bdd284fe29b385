// Package unit implements the execution-unit contract: decode a request, run one
// handler, encode the outcome. Entry points are synchronous and keep no state
// between calls; a non-nil error from an entry point is a hard failure
// (*DecodeError or *EncodeError), distinct from a success:false outcome.
package unit

import (
	"errors"

	"go.uber.org/zap"
)

// EntryPoint is one externally callable surface of the unit.
type EntryPoint func(text string) (string, error)

const (
	EntryExecute       = "execute"
	EntryValidateInput = "validate_input"
	EntryCollectData   = "collect_data"
)

// Unit holds only an immutable logger and is safe for concurrent use.
type Unit struct {
	log *zap.Logger
}

type Option func(*Unit)

func WithLogger(l *zap.Logger) Option {
	return func(u *Unit) {
		if l != nil {
			u.log = l
		}
	}
}

func New(opts ...Option) *Unit {
	u := &Unit{log: zap.NewNop()}
	for _, o := range opts {
		o(u)
	}
	return u
}

var defaultUnit = New()

// Execute decodes, dispatches by function name and encodes.
func (u *Unit) Execute(text string) (string, error) {
	req, err := DecodeRequest(text)
	if err != nil {
		return "", u.hard(EntryExecute, err)
	}
	out := Dispatch(req)
	u.log.Debug("dispatched",
		zap.String("entrypoint", EntryExecute),
		zap.String("function", req.Function),
		zap.Stringer("handler", ParseFunction(req.Function)),
		zap.Bool("success", out.Success()),
		zap.String("action", string(out.action)),
	)
	return u.encode(EntryExecute, out)
}

// ValidateInput always runs validate regardless of the request's function.
func (u *Unit) ValidateInput(text string) (string, error) {
	req, err := DecodeRequest(text)
	if err != nil {
		return "", u.hard(EntryValidateInput, err)
	}
	out := validate(req)
	u.log.Debug("validated",
		zap.String("entrypoint", EntryValidateInput),
		zap.Bool("success", out.Success()),
	)
	return u.encode(EntryValidateInput, out)
}

// CollectData ignores text entirely and returns the fixed form schema.
func (u *Unit) CollectData(_ string) (string, error) {
	return u.encode(EntryCollectData, collectData())
}

// EntryPoints returns the host-facing name -> entry point table.
func (u *Unit) EntryPoints() map[string]EntryPoint {
	return map[string]EntryPoint{
		EntryExecute:       u.Execute,
		EntryValidateInput: u.ValidateInput,
		EntryCollectData:   u.CollectData,
	}
}

func (u *Unit) encode(entry string, out Outcome) (string, error) {
	s, err := EncodeOutcome(out)
	if err != nil {
		return "", u.hard(entry, err)
	}
	return s, nil
}

func (u *Unit) hard(entry string, err error) error {
	kind := "encode"
	var de *DecodeError
	if errors.As(err, &de) {
		kind = "decode"
	}
	u.log.Warn("hard failure",
		zap.String("entrypoint", entry),
		zap.String("kind", kind),
		zap.Error(err),
	)
	return err
}

func Execute(text string) (string, error)       { return defaultUnit.Execute(text) }
func ValidateInput(text string) (string, error) { return defaultUnit.ValidateInput(text) }
func CollectData(text string) (string, error)   { return defaultUnit.CollectData(text) }

// EntryPoints returns the table for the default, non-logging unit.
func EntryPoints() map[string]EntryPoint { return defaultUnit.EntryPoints() }
