package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the top-level host manifest.
type Config struct {
	Plugin Plugin  `toml:"plugin"`
	Routes []Route `toml:"route"`
}

// Validate normalizes routes in place and rejects manifests the host cannot serve.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Plugin.Name) == "" {
		c.Plugin.Name = "plugin"
	}
	if len(c.Routes) == 0 {
		return errors.New("no routes defined")
	}
	if err := c.validateRoutes(); err != nil {
		return err
	}
	return nil
}

// HandlerNames lists every in-process handler the manifest references, in route order.
func (c *Config) HandlerNames() []string {
	seen := make(map[string]struct{}, len(c.Routes))
	out := make([]string, 0, len(c.Routes))
	for _, rt := range c.Routes {
		if rt.Handler.Type != HandlerInproc {
			continue
		}
		if _, ok := seen[rt.Handler.Name]; ok {
			continue
		}
		seen[rt.Handler.Name] = struct{}{}
		out = append(out, rt.Handler.Name)
	}
	return out
}

func (c *Config) validateRoutes() error {
	seen := make(map[string]int, len(c.Routes))
	for i := range c.Routes {
		if err := c.Routes[i].normalize(); err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}
		if err := c.Routes[i].validate(); err != nil {
			return fmt.Errorf("route %d (%s %s): %w", i, c.Routes[i].Method, c.Routes[i].Path, err)
		}
		key := c.Routes[i].Method + " " + c.Routes[i].Path
		if j, dup := seen[key]; dup {
			return fmt.Errorf("route %d (%s): duplicates route %d", i, key, j)
		}
		seen[key] = i
	}
	return nil
}
