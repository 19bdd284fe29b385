package unit

import "github.com/joeydtaylor/steeze-plugin/pkg/value"

// PluginVersion is reported by greet.
const PluginVersion = "1.0.0"

func greet(req Request) Outcome {
	name, ok := req.Input.StringAt("name")
	if !ok {
		name = "World"
	}
	userID := "anonymous"
	if req.UserID != nil {
		userID = *req.UserID
	}
	return Succeed(value.Map{
		"greeting":       value.String("Hello, " + name + "!"),
		"user_id":        value.String(userID),
		"plugin_version": value.String(PluginVersion),
	})
}
