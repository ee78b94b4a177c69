package provider

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Source enumerates the providers currently injected somewhere.
type Source interface {
	Providers(ctx context.Context) ([]Descriptor, error)
}

// Environment is the in-process injection surface. Adapters inject themselves
// at any time, including after the first scan.
type Environment struct {
	mu        sync.RWMutex
	order     []string
	providers map[string]Descriptor
}

var _ Source = (*Environment)(nil)

func NewEnvironment() *Environment {
	return &Environment{providers: make(map[string]Descriptor)}
}

// Inject adds or replaces a provider. Replacing keeps the original position.
func (e *Environment) Inject(d Descriptor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.providers[d.Name]; !ok {
		e.order = append(e.order, d.Name)
	}
	e.providers[d.Name] = d
}

func (e *Environment) Remove(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.providers[name]; !ok {
		return
	}
	delete(e.providers, name)
	e.order = slices.DeleteFunc(e.order, func(n string) bool { return n == name })
}

func (e *Environment) Providers(_ context.Context) ([]Descriptor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Descriptor, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.providers[name])
	}
	return out, nil
}

type multiSource []Source

// Sources enumerates each source in turn.
func Sources(sources ...Source) Source {
	return multiSource(sources)
}

func (m multiSource) Providers(ctx context.Context) ([]Descriptor, error) {
	var (
		out  []Descriptor
		errs []error
	)
	for _, s := range m {
		descriptors, err := s.Providers(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, descriptors...)
	}
	return out, errors.Join(errs...)
}
