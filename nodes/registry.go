// Package nodes selects the suiobj.Node implementation a binary talks to.
//
// Backends register themselves in init(); the built-in ones are "jsonrpc"
// (a full node over JSON-RPC) and "grpc" (another suiobj-proxyd).
package nodes

import (
	"fmt"
	"sort"
	"sync"

	"xdao.co/suiobj/config"
	"xdao.co/suiobj/suiobj"
)

// Backend opens a suiobj.Node from configuration.
type Backend struct {
	Name        string
	Description string

	// Open constructs the node. It returns an optional close function.
	Open func(cfg config.Config) (suiobj.Node, func() error, error)
}

var (
	mu       sync.RWMutex
	backends = map[string]Backend{}
)

// Register registers a backend.
func Register(b Backend) error {
	if b.Name == "" {
		return fmt.Errorf("nodes: backend name is required")
	}
	if b.Open == nil {
		return fmt.Errorf("nodes: backend %q missing Open", b.Name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := backends[b.Name]; exists {
		return fmt.Errorf("nodes: backend %q already registered", b.Name)
	}
	backends[b.Name] = b
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(b Backend) {
	if err := Register(b); err != nil {
		panic(err)
	}
}

// List returns registered backends sorted by name.
func List() []Backend {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Backend, 0, len(backends))
	for _, b := range backends {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns registered backend names, sorted.
func Names() []string {
	bs := List()
	n := make([]string, 0, len(bs))
	for _, b := range bs {
		n = append(n, b.Name)
	}
	return n
}

// Open opens the backend named by cfg.Backend.
func Open(cfg config.Config) (suiobj.Node, func() error, error) {
	mu.RLock()
	b, ok := backends[cfg.Backend]
	mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("unknown backend %q (known: %v)", cfg.Backend, Names())
	}
	node, closeFn, err := b.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return node, closeFn, nil
}
