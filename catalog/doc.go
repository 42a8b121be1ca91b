// Package catalog holds an ordered sequence of products and exposes the
// query operations over it.
//
// An Engine is seeded once from a SeedProvider (the built-in catalogue or a
// YAML/JSON file) and then queried. Every operation returns fresh slices;
// SpecificColumns is the only operation that replaces the held sequence.
// An Engine is not safe for concurrent use.
//
//	eng, err := catalog.NewEngine(ctx, catalog.StaticProvider{})
//	green := eng.Where(ctx, catalog.ByColor("Green"), catalog.CostAbove(10))
//	p, err := eng.Single(ctx, catalog.ByColor("White")) // MULTIPLE_MATCHES
package catalog
