package manifest

// HandlerType enumerates the supported handler kinds.
type HandlerType string

const (
	// HandlerInproc calls a handler registered in-process under Handler.Name.
	HandlerInproc HandlerType = "inproc"
)

// Plugin identifies the unit the host is serving.
type Plugin struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}
