package cli

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/prodquery/catalog"
	"github.com/kbukum/prodquery/query"
)

type demoStep struct {
	title string
	run   func(a *app, out *renderer) error
}

// demoSteps replays the classic query walkthrough. SpecificColumns replaces
// the held sequence, so it runs last.
var demoSteps = []demoStep{
	{"All columns", func(a *app, out *renderer) error {
		out.products(a.engine.AllColumns(a.ctx))
		return nil
	}},
	{"Single column (names)", func(a *app, out *renderer) error {
		out.strings("Name", a.engine.Names(a.ctx))
		return nil
	}},
	{"Anonymous projection", func(a *app, out *renderer) error {
		out.summaries(a.engine.Summaries(a.ctx))
		return nil
	}},
	{"Order by name", func(a *app, out *renderer) error {
		out.products(a.engine.OrderByName(a.ctx, query.Ascending))
		return nil
	}},
	{"Order by name descending", func(a *app, out *renderer) error {
		out.products(a.engine.OrderByName(a.ctx, query.Descending))
		return nil
	}},
	{"Order by color descending then name", func(a *app, out *renderer) error {
		out.products(a.engine.OrderByColorThenName(a.ctx))
		return nil
	}},
	{"Where color is Green", func(a *app, out *renderer) error {
		out.products(a.engine.Where(a.ctx, catalog.ByColor("Green")))
		return nil
	}},
	{"Where color is Green and cost above 10", func(a *app, out *renderer) error {
		out.products(a.engine.Where(a.ctx, catalog.ByColor("Green"), catalog.CostAbove(10)))
		return nil
	}},
	{"Custom predicate: White", func(a *app, out *renderer) error {
		out.products(a.engine.ByColor(a.ctx, "White"))
		return nil
	}},
	{"First", selectStep(func(a *app) (catalog.Product, error) { return a.engine.First(a.ctx) })},
	{"First Orange", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.First(a.ctx, catalog.ByColor("Orange"))
	})},
	{"First Orange or default", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.FirstOrDefault(a.ctx, catalog.ByColor("Orange")), nil
	})},
	{"First White", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.First(a.ctx, catalog.ByColor("White"))
	})},
	{"Last", selectStep(func(a *app) (catalog.Product, error) { return a.engine.Last(a.ctx) })},
	{"Last Orange", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.Last(a.ctx, catalog.ByColor("Orange"))
	})},
	{"Last Orange or default", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.LastOrDefault(a.ctx, catalog.ByColor("Orange")), nil
	})},
	{"Last White", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.Last(a.ctx, catalog.ByColor("White"))
	})},
	{"Single", selectStep(func(a *app) (catalog.Product, error) { return a.engine.Single(a.ctx) })},
	{"Single White", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.Single(a.ctx, catalog.ByColor("White"))
	})},
	{"Single Orange or default", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.SingleOrDefault(a.ctx, catalog.ByColor("Orange"))
	})},
	{"Single Yellow", selectStep(func(a *app) (catalog.Product, error) {
		return a.engine.Single(a.ctx, catalog.ByColor("Yellow"))
	})},
	{"Distinct colors", func(a *app, out *renderer) error {
		out.strings("Color", a.engine.DistinctColors(a.ctx))
		return nil
	}},
	{"Any Potti", func(a *app, out *renderer) error {
		out.line("%t", a.engine.Any(a.ctx, catalog.ByColor("Potti")))
		return nil
	}},
	{"Any Green", func(a *app, out *renderer) error {
		out.line("%t", a.engine.Any(a.ctx, catalog.ByColor("Green")))
		return nil
	}},
	{"Specific columns", func(a *app, out *renderer) error {
		out.products(a.engine.SpecificColumns(a.ctx))
		return nil
	}},
}

func selectStep(fn func(a *app) (catalog.Product, error)) func(a *app, out *renderer) error {
	return func(a *app, out *renderer) error {
		p, err := fn(a)
		if err != nil {
			return err
		}
		out.product(p)
		return nil
	}
}

func demoCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run every query demonstration in order",
		Long:  "demo runs each query in turn. Failing selections print their error and the run continues.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := newRenderer(cmd.OutOrStdout())
			for i, step := range demoSteps {
				if i > 0 {
					out.line("")
				}
				out.title(step.title)
				if err := step.run(a, out); err != nil {
					out.failure(err)
				}
			}
			return nil
		},
	}
}
