package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var errMissingDefinitionCode = errors.New("dashboard: widget definition code is required")

// Registry implements ProviderRegistry. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]WidgetDefinition
	providers   map[string]Provider
}

// NewRegistry returns a registry holding the built-in widget definitions
// without any providers bound.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: make(map[string]WidgetDefinition),
		providers:   make(map[string]Provider),
	}
	for _, def := range DefaultWidgetDefinitions() {
		reg.definitions[def.Code] = def
	}
	return reg
}

// NewDefaultRegistry binds every built-in provider to the fixture store.
func NewDefaultRegistry(fixtures FixtureStore, chartOpts ...EChartsProviderOption) (*Registry, error) {
	reg := NewRegistry()
	if err := reg.RegisterProviders(DefaultProviders(fixtures, chartOpts...)); err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterProviders binds providers to already registered definitions.
func (r *Registry) RegisterProviders(providers map[string]Provider) error {
	var errs []error
	for code, provider := range providers {
		if err := r.RegisterProvider(code, provider); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RegisterDefinition stores or replaces widget metadata.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if strings.TrimSpace(def.Code) == "" {
		return errMissingDefinitionCode
	}
	r.mu.Lock()
	r.definitions[def.Code] = def
	r.mu.Unlock()
	return nil
}

// RegisterProvider binds a provider to a known definition.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return errMissingDefinitionCode
	}
	if provider == nil {
		return fmt.Errorf("dashboard: nil provider for %s", code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("dashboard: widget definition %s not found", code)
	}
	r.providers[code] = provider
	return nil
}

// Definition fetches a widget definition by code.
func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider fetches the provider bound to a definition.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// Definitions lists registered definitions ordered by code.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	r.mu.RUnlock()
	slices.SortFunc(defs, func(a, b WidgetDefinition) int { return strings.Compare(a.Code, b.Code) })
	return defs
}
