package transport

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-lattice/core"
)

// AdapterOptions carries what a factory needs to build an adapter.
type AdapterOptions struct {
	Client               HTTPDoer
	Signer               core.Signer
	MaxResponseBodyBytes int64
}

type AdapterFactory func(opts AdapterOptions) (core.TransportAdapter, error)

type Registry struct {
	mu        sync.RWMutex
	factories map[string]AdapterFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]AdapterFactory{}}
}

// NewDefaultRegistry knows the rest and dryrun adapters.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.Register(KindREST, func(opts AdapterOptions) (core.TransportAdapter, error) {
		adapter := NewRESTAdapter(opts.Client, opts.Signer)
		if opts.MaxResponseBodyBytes > 0 {
			adapter.MaxResponseBodyBytes = opts.MaxResponseBodyBytes
		}
		return adapter, nil
	})
	_ = registry.Register(KindDryRun, func(opts AdapterOptions) (core.TransportAdapter, error) {
		return NewDryRunAdapter(opts.Signer), nil
	})
	return registry
}

func (r *Registry) Register(kind string, factory AdapterFactory) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	kind = normalizeKind(kind)
	if kind == "" {
		return fmt.Errorf("transport: adapter kind is required")
	}
	if factory == nil {
		return fmt.Errorf("transport: adapter factory is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("transport: adapter kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

func (r *Registry) Build(kind string, opts AdapterOptions) (core.TransportAdapter, error) {
	if r == nil {
		return nil, fmt.Errorf("transport: registry is nil")
	}
	kind = normalizeKind(kind)
	if kind == "" {
		kind = KindREST
	}

	r.mu.RLock()
	factory := r.factories[kind]
	r.mu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("transport: adapter kind %q not registered", kind)
	}
	built, err := factory(opts)
	if err != nil {
		return nil, err
	}
	if built == nil {
		return nil, fmt.Errorf("transport: factory for %q returned nil adapter", kind)
	}
	return built, nil
}

func (r *Registry) Kinds() []string {
	if r == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func normalizeKind(kind string) string {
	return strings.TrimSpace(strings.ToLower(kind))
}
