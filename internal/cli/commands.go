package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/prodquery/catalog"
	"github.com/kbukum/prodquery/query"
	"github.com/kbukum/prodquery/validation"
	"github.com/kbukum/prodquery/version"
)

var listFields = []string{"all", "names", "summary", "specific"}

func listCmd(appFn func() *app) *cobra.Command {
	var fields string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with a column projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.New().OneOf("fields", fields, listFields).Validate(); err != nil {
				return err
			}
			a := appFn()
			out := newRenderer(cmd.OutOrStdout())
			switch fields {
			case "names":
				out.strings("Name", a.engine.Names(a.ctx))
			case "summary":
				out.summaries(a.engine.Summaries(a.ctx))
			case "specific":
				out.products(a.engine.SpecificColumns(a.ctx))
			default:
				out.products(a.engine.AllColumns(a.ctx))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fields, "fields", "f", "all", "Projection: all, names, summary or specific")
	return cmd
}

func sortCmd(appFn func() *app) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Order products by one or more fields",
		Example: `  prodquery sort --by name
  prodquery sort --by "color:desc,name"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			sorted, err := a.engine.SortBy(a.ctx, by)
			if err != nil {
				return err
			}
			newRenderer(cmd.OutOrStdout()).products(sorted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&by, "by", "b", "name", "Comma separated field[:asc|desc] list")
	return cmd
}

// filterFlags builds predicates shared by filter and the selection commands.
type filterFlags struct {
	color   string
	minCost float64
	name    string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.color, "color", "", "Match products of this color")
	cmd.Flags().Float64Var(&f.minCost, "min-cost", 0, "Match products costing more than this")
	cmd.Flags().StringVar(&f.name, "name", "", "Match products whose name contains this text")
}

func (f *filterFlags) predicates() ([]query.Predicate[catalog.Product], error) {
	if err := validation.New().NotNegative("min-cost", f.minCost).Validate(); err != nil {
		return nil, err
	}
	var preds []query.Predicate[catalog.Product]
	if f.color != "" {
		preds = append(preds, catalog.ByColor(f.color))
	}
	if f.minCost > 0 {
		preds = append(preds, catalog.CostAbove(f.minCost))
	}
	if f.name != "" {
		preds = append(preds, catalog.NameContains(f.name))
	}
	return preds, nil
}

func filterCmd(appFn func() *app) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show products matching every given condition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			preds, err := ff.predicates()
			if err != nil {
				return err
			}
			a := appFn()
			newRenderer(cmd.OutOrStdout()).products(a.engine.Where(a.ctx, preds...))
			return nil
		},
	}

	ff.register(cmd)
	return cmd
}

// selectCmd builds first, last and single, which differ only in the engine call.
func selectCmd(appFn func() *app, name, short string) *cobra.Command {
	var (
		ff        filterFlags
		orDefault bool
	)

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			preds, err := ff.predicates()
			if err != nil {
				return err
			}
			a := appFn()
			p, err := selectProduct(a, name, orDefault, preds)
			if err != nil {
				return err
			}
			newRenderer(cmd.OutOrStdout()).product(p)
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVar(&orDefault, "or-default", false, "Print <none> instead of failing when nothing matches")
	return cmd
}

func selectProduct(a *app, name string, orDefault bool, preds []query.Predicate[catalog.Product]) (catalog.Product, error) {
	e := a.engine
	switch {
	case name == "first" && orDefault:
		return e.FirstOrDefault(a.ctx, preds...), nil
	case name == "first":
		return e.First(a.ctx, preds...)
	case name == "last" && orDefault:
		return e.LastOrDefault(a.ctx, preds...), nil
	case name == "last":
		return e.Last(a.ctx, preds...)
	case name == "single" && orDefault:
		return e.SingleOrDefault(a.ctx, preds...)
	case name == "single":
		return e.Single(a.ctx, preds...)
	}
	return catalog.Product{}, fmt.Errorf("unknown selection %q", name)
}

func distinctCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "distinct",
		Short: "List each color once, in first-seen order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			newRenderer(cmd.OutOrStdout()).strings("Color", a.engine.DistinctColors(a.ctx))
			return nil
		},
	}
}

func anyCmd(appFn func() *app) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "any",
		Short: "Report whether any product matches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			preds, err := ff.predicates()
			if err != nil {
				return err
			}
			a := appFn()
			fmt.Fprintln(cmd.OutOrStdout(), a.engine.Any(a.ctx, preds...))
			return nil
		},
	}

	ff.register(cmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
