package core

import (
	"context"
	"sync"
)

// InprocHandler is the signature for in-process handlers.
// 'in' is the raw request body, 'status' is the HTTP status code to send.
type InprocHandler func(ctx context.Context, in []byte) (out []byte, status int, err error)

var (
	registryMu sync.RWMutex
	registry   = map[string]InprocHandler{}
)

// Register makes a handler available under a name referenced in manifest.toml.
// Registering a name twice replaces the earlier handler.
func Register(name string, h InprocHandler) {
	registryMu.Lock()
	registry[name] = h
	registryMu.Unlock()
}

// Lookup retrieves a registered in-proc handler by name.
func Lookup(name string) (InprocHandler, bool) {
	registryMu.RLock()
	h, ok := registry[name]
	registryMu.RUnlock()
	return h, ok
}
