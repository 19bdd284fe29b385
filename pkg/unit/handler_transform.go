package unit

import (
	"strings"

	"github.com/joeydtaylor/steeze-plugin/pkg/value"
)

const (
	// TransformedAt is a fixed timestamp; the unit has no clock.
	TransformedAt = "2024-01-01T00:00:00Z"
	TransformerID = "hello-plugin"
)

// transform upper-cases string inputs under "<key>_transformed" and copies the rest.
func transform(req Request) Outcome {
	data := make(value.Map, len(req.Input)+2)
	for k, v := range req.Input {
		if s, ok := v.AsString(); ok {
			data[k+"_transformed"] = value.String(strings.ToUpper(s))
			continue
		}
		data[k] = v
	}
	data["transformed_at"] = value.String(TransformedAt)
	data["transformer"] = value.String(TransformerID)
	return Succeed(data)
}
