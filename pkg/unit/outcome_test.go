package unit

import (
	"errors"
	"testing"

	"github.com/joeydtaylor/steeze-plugin/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeConstructorsHonourInvariants(t *testing.T) {
	for name, o := range map[string]Outcome{
		"succeed": Succeed(nil),
		"fail":    Fail("boom"),
		"require": RequireInput(value.Map{"title": value.String("t")}),
		"branch":  BranchTo("b1", nil),
	} {
		t.Run(name, func(t *testing.T) {
			a, ok := o.Action()
			require.True(t, ok)
			_, hasErr := o.ErrorMessage()
			if o.Success() {
				assert.False(t, hasErr)
				assert.NotEqual(t, ActionFail, a)
				assert.NotNil(t, o.Data())
			} else {
				assert.True(t, hasErr)
				assert.Equal(t, ActionFail, a)
				assert.Nil(t, o.Data())
			}

			text, err := EncodeOutcome(o)
			require.NoError(t, err)
			assert.NotContains(t, text, "null")
			back, err := ParseOutcome(text)
			require.NoError(t, err)
			assert.Equal(t, o.Success(), back.Success())
		})
	}
}

func TestBranchToCopiesData(t *testing.T) {
	data := value.Map{"k": value.Int(1)}
	o := BranchTo("x", data)
	_, leaked := data[BranchIDKey]
	assert.False(t, leaked)
	id, ok := o.BranchID()
	assert.True(t, ok)
	assert.Equal(t, "x", id)

	_, ok = Succeed(nil).BranchID()
	assert.False(t, ok)
}

func TestEncodeOmitsAbsentFields(t *testing.T) {
	text, err := EncodeOutcome(Fail("nope"))
	require.NoError(t, err)
	assert.Equal(t, `{"success":false,"error":"nope","action":"fail"}`, text)

	text, err = EncodeOutcome(Succeed(value.Map{}))
	require.NoError(t, err)
	assert.Equal(t, `{"success":true,"action":"continue","data":{}}`, text)
}

func TestEncodeError(t *testing.T) {
	_, err := EncodeOutcome(Succeed(value.Map{"n": value.Number("NaN")}))
	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Contains(t, err.Error(), "Failed to serialize output")
}

func TestParseOutcomeRejectsBrokenInvariants(t *testing.T) {
	cases := map[string]string{
		"no success":         `{"action":"continue"}`,
		"no action":          `{"success":true}`,
		"unknown action":     `{"success":true,"action":"jump"}`,
		"success with error": `{"success":true,"error":"x","action":"continue"}`,
		"success fail":       `{"success":true,"action":"fail"}`,
		"failure continue":   `{"success":false,"error":"x","action":"continue"}`,
		"failure data":       `{"success":false,"error":"x","action":"fail","data":{}}`,
		"branch no id":       `{"success":true,"action":"branch","data":{}}`,
		"malformed":          `{`,
	}
	for name, text := range cases {
		_, err := ParseOutcome(text)
		var de *DecodeError
		assert.True(t, errors.As(err, &de), name)
	}
}

func TestActionValid(t *testing.T) {
	for _, a := range []Action{ActionContinue, ActionFail, ActionRequireInput, ActionBranch} {
		assert.True(t, a.Valid())
	}
	assert.False(t, Action("require_input").Valid())
}
