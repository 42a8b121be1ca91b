package catalog

import (
	"context"
	"fmt"

	"github.com/kbukum/prodquery/component"
)

// Component seeds an Engine on Start for use with component.Registry.
type Component struct {
	provider SeedProvider
	opts     []Option
	engine   *Engine
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a catalog component seeded from provider.
func NewComponent(provider SeedProvider, opts ...Option) *Component {
	return &Component{provider: provider, opts: opts}
}

// Engine returns the seeded engine, or nil before Start.
func (c *Component) Engine() *Engine { return c.engine }

// Name returns the component name.
func (c *Component) Name() string { return "catalog" }

// Start loads the seed and builds the engine.
func (c *Component) Start(ctx context.Context) error {
	e, err := NewEngine(ctx, c.provider, c.opts...)
	if err != nil {
		return err
	}
	c.engine = e
	return nil
}

// Stop is a no-op; the engine holds only memory.
func (c *Component) Stop(context.Context) error { return nil }

// Health reports unhealthy until the engine is seeded.
func (c *Component) Health(context.Context) component.Health {
	if c.engine == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not seeded"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe reports the seed source and size.
func (c *Component) Describe() component.Description {
	d := component.Description{Name: "Product catalog", Type: "catalog"}
	if c.engine != nil {
		d.Details = fmt.Sprintf("source=%s products=%d", c.engine.Source(), c.engine.Len())
	}
	return d
}
