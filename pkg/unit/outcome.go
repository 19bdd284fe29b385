package unit

import (
	"errors"
	"fmt"

	"github.com/joeydtaylor/steeze-plugin/pkg/codec"
	"github.com/joeydtaylor/steeze-plugin/pkg/value"
)

// BranchIDKey is the data key that names the selected branch on a branch outcome.
const BranchIDKey = "branchId"

// Outcome is the result of one dispatch. Fields are unexported so every outcome
// goes through a constructor and carries a directive.
type Outcome struct {
	success bool
	err     string
	action  Action
	data    value.Map
}

// Succeed continues the workflow with data.
func Succeed(data value.Map) Outcome {
	return Outcome{success: true, action: ActionContinue, data: orEmpty(data)}
}

// Fail stops the workflow with a human-readable message.
func Fail(msg string) Outcome {
	return Outcome{success: false, err: msg, action: ActionFail}
}

// RequireInput asks the host to collect more input using the form schema.
func RequireInput(schema value.Map) Outcome {
	return Outcome{success: true, action: ActionRequireInput, data: orEmpty(schema)}
}

// BranchTo selects a named continuation. data is copied and branchId is set.
func BranchTo(branchID string, data value.Map) Outcome {
	out := data.Clone()
	if out == nil {
		out = value.Map{}
	}
	out[BranchIDKey] = value.String(branchID)
	return Outcome{success: true, action: ActionBranch, data: out}
}

func (o Outcome) Success() bool { return o.success }

func (o Outcome) ErrorMessage() (string, bool) {
	if o.success {
		return "", false
	}
	return o.err, true
}

func (o Outcome) Action() (Action, bool) {
	if o.action == "" {
		return "", false
	}
	return o.action, true
}

// Data is nil on failure outcomes.
func (o Outcome) Data() value.Map {
	if !o.success {
		return nil
	}
	return o.data
}

// BranchID returns the selected branch on a branch outcome.
func (o Outcome) BranchID() (string, bool) {
	if o.action != ActionBranch {
		return "", false
	}
	return o.data.StringAt(BranchIDKey)
}

type wireOutcome struct {
	Success *bool      `json:"success"`
	Error   *string    `json:"error,omitempty"`
	Action  *Action    `json:"action,omitempty"`
	Data    *value.Map `json:"data,omitempty"`
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	success := o.success
	w := wireOutcome{Success: &success}
	if !o.success {
		msg := o.err
		w.Error = &msg
	}
	if o.action != "" {
		a := o.action
		w.Action = &a
	}
	if o.success && o.data != nil {
		d := o.data
		w.Data = &d
	}
	return codec.JSON.Marshal(w)
}

// EncodeOutcome serializes o, omitting absent fields.
func EncodeOutcome(o Outcome) (string, error) {
	b, err := codec.JSON.Marshal(o)
	if err != nil {
		return "", &EncodeError{Err: err}
	}
	return string(b), nil
}

var (
	errMissingSuccess = errors.New("missing field `success`")
	errMissingAction  = errors.New("missing field `action`")
)

// ParseOutcome decodes an encoded outcome on the caller side and checks the
// directive invariants.
func ParseOutcome(text string) (Outcome, error) {
	var w wireOutcome
	if err := codec.JSON.Unmarshal([]byte(text), &w); err != nil {
		return Outcome{}, &DecodeError{Err: err}
	}
	if w.Success == nil {
		return Outcome{}, &DecodeError{Err: errMissingSuccess}
	}
	if w.Action == nil {
		return Outcome{}, &DecodeError{Err: errMissingAction}
	}
	o := Outcome{success: *w.Success, action: *w.Action}
	if w.Error != nil {
		o.err = *w.Error
	}
	if w.Data != nil {
		o.data = *w.Data
	}
	if err := o.check(w.Error != nil, w.Data != nil); err != nil {
		return Outcome{}, &DecodeError{Err: err}
	}
	return o, nil
}

func (o Outcome) check(hasError, hasData bool) error {
	if !o.action.Valid() {
		return fmt.Errorf("unknown action %q", o.action)
	}
	if o.success {
		if hasError {
			return errors.New("success outcome carries an error")
		}
		if o.action == ActionFail {
			return errors.New("success outcome with fail action")
		}
		if o.action == ActionBranch {
			if _, ok := o.data.StringAt(BranchIDKey); !ok {
				return errors.New("branch outcome without branchId")
			}
		}
		return nil
	}
	if o.action != ActionFail {
		return fmt.Errorf("failure outcome with %q action", o.action)
	}
	if hasData {
		return errors.New("failure outcome carries data")
	}
	return nil
}

func orEmpty(m value.Map) value.Map {
	if m == nil {
		return value.Map{}
	}
	return m
}
