package unit

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joeydtaylor/steeze-plugin/pkg/codec"
	"github.com/joeydtaylor/steeze-plugin/pkg/value"
)

// Request is one execution request as supplied by the host.
// UserID and TenantID are nil when the caller has no identity.
type Request struct {
	Function    string
	UserID      *string
	TenantID    *string
	Input       value.Map
	JourneyData value.Map
}

// wireRequest mirrors the external field names. Pointers distinguish absent
// (or null) fields from empty ones. DecodeRequest fills it key by key because
// encoding/json matches struct tags case-insensitively.
type wireRequest struct {
	Function    *string    `json:"function"`
	UserID      *string    `json:"userId,omitempty"`
	TenantID    *string    `json:"tenantId,omitempty"`
	Input       *value.Map `json:"input"`
	JourneyData *value.Map `json:"journeyData"`
}

var (
	errMissingFunction    = errors.New("missing field `function`")
	errEmptyFunction      = errors.New("field `function` must not be empty")
	errMissingInput       = errors.New("missing field `input`")
	errMissingJourneyData = errors.New("missing field `journeyData`")
)

// DecodeRequest parses an encoded request. Field names match exactly; keys
// differing only in case are unknown fields and, like all unknown fields, ignored.
func DecodeRequest(text string) (Request, error) {
	var fields map[string]json.RawMessage
	if err := codec.JSON.Unmarshal([]byte(text), &fields); err != nil {
		return Request{}, &DecodeError{Err: err}
	}

	var w wireRequest
	for _, f := range []struct {
		key string
		dst any
	}{
		{"function", &w.Function},
		{"userId", &w.UserID},
		{"tenantId", &w.TenantID},
		{"input", &w.Input},
		{"journeyData", &w.JourneyData},
	} {
		raw, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := codec.JSON.Unmarshal(raw, f.dst); err != nil {
			return Request{}, &DecodeError{Err: fmt.Errorf("field `%s`: %w", f.key, err)}
		}
	}

	switch {
	case w.Function == nil:
		return Request{}, &DecodeError{Err: errMissingFunction}
	case *w.Function == "":
		return Request{}, &DecodeError{Err: errEmptyFunction}
	case w.Input == nil:
		return Request{}, &DecodeError{Err: errMissingInput}
	case w.JourneyData == nil:
		return Request{}, &DecodeError{Err: errMissingJourneyData}
	}
	return Request{
		Function:    *w.Function,
		UserID:      w.UserID,
		TenantID:    w.TenantID,
		Input:       *w.Input,
		JourneyData: *w.JourneyData,
	}, nil
}

// EncodeRequest is the caller-side counterpart of DecodeRequest.
func EncodeRequest(req Request) (string, error) {
	input, journey := req.Input, req.JourneyData
	if input == nil {
		input = value.Map{}
	}
	if journey == nil {
		journey = value.Map{}
	}
	fn := req.Function
	b, err := codec.JSON.Marshal(wireRequest{
		Function:    &fn,
		UserID:      req.UserID,
		TenantID:    req.TenantID,
		Input:       &input,
		JourneyData: &journey,
	})
	if err != nil {
		return "", &EncodeError{Err: err}
	}
	return string(b), nil
}
