package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-backend/internal/apperror"
	"storefront-backend/internal/model"
)

// SettingsSource supplies the persisted per-merchant provider overrides.
type SettingsSource interface {
	List(ctx context.Context) ([]model.ProviderSettings, error)
}

// Catalog merges static provider capability records with persisted merchant
// settings. Construct one per store; it holds no mutable state of its own.
type Catalog struct {
	base     []Provider
	settings SettingsSource
}

func New(settings SettingsSource) *Catalog {
	return &Catalog{
		base:     baseProviders(),
		settings: settings,
	}
}

// NewStatic builds a catalog without a settings source, using the base
// records as-is. Intended for tests and offline tooling.
func NewStatic(providers []Provider) *Catalog {
	return &Catalog{base: providers}
}

// List returns every provider record in catalog order with merchant
// overrides applied.
func (c *Catalog) List(ctx context.Context) ([]Provider, error) {
	overrides, err := c.loadOverrides(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Provider, len(c.base))
	for i, p := range c.base {
		out[i] = applyOverride(p, overrides)
	}
	return out, nil
}

// Get returns a single provider by id with overrides applied.
func (c *Catalog) Get(ctx context.Context, id string) (*Provider, error) {
	overrides, err := c.loadOverrides(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range c.base {
		if p.ID == id {
			merged := applyOverride(p, overrides)
			return &merged, nil
		}
	}
	return nil, apperror.NotFound("provider", id)
}

func (c *Catalog) loadOverrides(ctx context.Context) (map[string]model.ProviderSettings, error) {
	if c.settings == nil {
		return nil, nil
	}

	rows, err := c.settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load provider settings: %w", err)
	}

	overrides := make(map[string]model.ProviderSettings, len(rows))
	for _, row := range rows {
		overrides[row.ProviderID] = row
	}
	return overrides, nil
}

func applyOverride(p Provider, overrides map[string]model.ProviderSettings) Provider {
	row, ok := overrides[p.ID]
	if !ok {
		return p
	}

	p.Enabled = row.Enabled
	p.TestMode = row.TestMode

	if row.Config != "" {
		cfg := map[string]string{}
		// A malformed config blob reads as "no secrets", which surfaces as
		// a disconnected provider rather than an error.
		if err := json.Unmarshal([]byte(row.Config), &cfg); err == nil {
			p.Config = cfg
		}
	}
	return p
}
