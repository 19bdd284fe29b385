package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Route exposes one unit entry point over HTTP.
type Route struct {
	Path    string `toml:"path"`
	Method  string `toml:"method"`
	Guard   Guard  `toml:"guard"`
	Policy  Policy `toml:"policy"`
	Handler HSpec  `toml:"handler"`
	// LogBody allowlists small JSON request bodies for the access log.
	LogBody bool `toml:"log_body"`
	// StampIdentity fills absent userId/tenantId from the authenticated caller.
	StampIdentity bool     `toml:"stamp_identity"`
	Tags          []string `toml:"tags"`
}

type Guard struct {
	Roles       []string `toml:"roles"`
	Users       []string `toml:"users"`
	RequireAuth bool     `toml:"require_auth"`
}

// Active reports whether the guard needs an authenticated caller.
func (g Guard) Active() bool {
	return g.RequireAuth || len(g.Roles) > 0 || len(g.Users) > 0
}

type Policy struct {
	TimeoutMS    int   `toml:"timeout_ms"`
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

type HSpec struct {
	Type HandlerType `toml:"type"`
	Name string      `toml:"name"`
}

// DefaultMaxBodyBytes caps request bodies when a route sets no limit.
const DefaultMaxBodyBytes int64 = 1 << 20

// normalize path/method/handler defaults
func (r *Route) normalize() error {
	if r.Path == "" {
		return errors.New("path is required")
	}
	if !strings.HasPrefix(r.Path, "/") {
		r.Path = "/" + r.Path
	}
	if r.Path != "/" {
		r.Path = path.Clean(r.Path)
	}
	r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
	if r.Method == "" {
		r.Method = "POST"
	}
	if r.Handler.Type == "" {
		r.Handler.Type = HandlerInproc
	}
	r.Handler.Name = strings.TrimSpace(r.Handler.Name)
	if r.Policy.MaxBodyBytes == 0 {
		r.Policy.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return nil
}

// validate fields that are independent of global state.
func (r *Route) validate() error {
	switch r.Handler.Type {
	case HandlerInproc:
		if r.Handler.Name == "" {
			return errors.New("handler.name required for inproc")
		}
	default:
		return fmt.Errorf("unknown handler type %q", r.Handler.Type)
	}

	switch r.Method {
	case "GET", "POST", "PUT":
	default:
		return fmt.Errorf("method %q not supported", r.Method)
	}

	if r.Policy.TimeoutMS < 0 {
		return errors.New("policy.timeout_ms must be >= 0")
	}
	if r.Policy.MaxBodyBytes < 0 {
		return errors.New("policy.max_body_bytes must be >= 0")
	}
	if r.StampIdentity && !r.Guard.Active() {
		return errors.New("stamp_identity requires an authenticated guard")
	}
	return nil
}
