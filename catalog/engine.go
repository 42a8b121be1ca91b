package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/prodquery/errors"
	"github.com/kbukum/prodquery/logger"
	"github.com/kbukum/prodquery/observability"
	"github.com/kbukum/prodquery/query"
)

// Engine holds an ordered product sequence and runs queries over it.
type Engine struct {
	id       string
	source   string
	products []Product
	log      *logger.Logger
	inst     *observability.Instruments
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithInstruments sets the tracing and metrics instruments.
func WithInstruments(i *observability.Instruments) Option {
	return func(e *Engine) { e.inst = i }
}

// NewEngine seeds an engine from provider.
func NewEngine(ctx context.Context, provider SeedProvider, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, errors.InvalidInput("provider", "seed provider is required")
	}
	e := &Engine{id: uuid.NewString(), source: provider.Name()}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get("catalog")
	}
	if e.inst == nil {
		e.inst = observability.DefaultInstruments()
	}
	e.log = e.log.WithFields(logger.Fields(logger.FieldEngineID, e.id))

	start := time.Now()
	products, err := provider.Load(ctx)
	if err != nil {
		e.log.Error("seed failed", logger.MergeFields(logger.ErrorFields("seed", err), logger.Fields(logger.FieldSource, e.source)))
		return nil, err
	}
	e.products = query.All(products)
	e.log.Info("engine seeded", logger.MergeFields(
		logger.OperationFields("seed", len(e.products), time.Since(start)),
		logger.Fields(logger.FieldSource, e.source),
	))
	return e, nil
}

// ID identifies the engine in logs.
func (e *Engine) ID() string { return e.id }

// Source names the seed provider.
func (e *Engine) Source() string { return e.source }

// Len returns the number of held products.
func (e *Engine) Len() int { return len(e.products) }

// Products returns a copy of the held sequence.
func (e *Engine) Products() []Product { return query.All(e.products) }

// AllColumns projects every product unchanged.
func (e *Engine) AllColumns(ctx context.Context) []Product {
	ctx, done := e.track(ctx, "all")
	out := query.All(e.products)
	done(ctx, len(out), nil)
	return out
}

// Names projects the product names in sequence order.
func (e *Engine) Names(ctx context.Context) []string {
	ctx, done := e.track(ctx, "select_name")
	out := query.Select(e.products, func(p Product) string { return p.Name })
	done(ctx, len(out), nil)
	return out
}

// SpecificColumns replaces the held sequence with its {ID, Name, Color}
// projection; StandardCost becomes zero. It returns the new sequence.
func (e *Engine) SpecificColumns(ctx context.Context) []Product {
	ctx, done := e.track(ctx, "select_columns")
	e.products = query.Select(e.products, func(p Product) Product {
		return Product{ID: p.ID, Name: p.Name, Color: p.Color}
	})
	done(ctx, len(e.products), nil)
	return query.All(e.products)
}

// Summaries projects each product onto a Summary.
func (e *Engine) Summaries(ctx context.Context) []Summary {
	ctx, done := e.track(ctx, "select_summary")
	out := query.Select(e.products, func(p Product) Summary {
		return Summary{ID: p.ID, Name: p.Name, Color: p.Color}
	})
	done(ctx, len(out), nil)
	return out
}

// OrderByName sorts by name in the given direction.
func (e *Engine) OrderByName(ctx context.Context, dir query.Direction) []Product {
	out, _ := e.Sort(ctx, NameKey.Direction(dir)) // static keys are valid
	return out
}

// OrderByColorThenName sorts by color descending, then name ascending.
func (e *Engine) OrderByColorThenName(ctx context.Context) []Product {
	out, _ := e.Sort(ctx, ColorKey.Desc(), NameKey)
	return out
}

// Sort stably sorts by keys, the first being primary.
func (e *Engine) Sort(ctx context.Context, keys ...query.Key[Product]) ([]Product, error) {
	ctx, done := e.track(ctx, "order_by")
	out, err := query.OrderBy(e.products, keys...)
	done(ctx, len(out), err, logger.FieldKeys, keyNames(keys))
	return out, err
}

// SortBy sorts by a textual key list such as "color:desc,name".
func (e *Engine) SortBy(ctx context.Context, expr string) ([]Product, error) {
	keys, err := query.ParseKeys[Product](expr)
	if err != nil {
		ctx, done := e.track(ctx, "order_by")
		done(ctx, 0, err, logger.FieldKeys, expr)
		return nil, err
	}
	return e.Sort(ctx, keys...)
}

// Where returns the products matching every predicate, in order.
func (e *Engine) Where(ctx context.Context, preds ...query.Predicate[Product]) []Product {
	ctx, done := e.track(ctx, "where")
	out := query.Where(e.products, preds...)
	done(ctx, len(out), nil)
	return out
}

// ByColor returns the products of one color.
func (e *Engine) ByColor(ctx context.Context, color string) []Product {
	return e.Where(ctx, ByColor(color))
}

// DistinctColors lists each color once, in first-seen order.
func (e *Engine) DistinctColors(ctx context.Context) []string {
	ctx, done := e.track(ctx, "distinct")
	out := query.Distinct(query.Select(e.products, func(p Product) string { return p.Color }))
	done(ctx, len(out), nil)
	return out
}

// Any reports whether a product matches.
func (e *Engine) Any(ctx context.Context, preds ...query.Predicate[Product]) bool {
	ctx, done := e.track(ctx, "any")
	ok := query.Any(e.products, preds...)
	done(ctx, boolCount(ok), nil)
	return ok
}

// Count returns the number of matching products.
func (e *Engine) Count(ctx context.Context, preds ...query.Predicate[Product]) int {
	ctx, done := e.track(ctx, "count")
	n := query.Count(e.products, preds...)
	done(ctx, n, nil)
	return n
}

// First returns the first matching product or NOT_FOUND.
func (e *Engine) First(ctx context.Context, preds ...query.Predicate[Product]) (Product, error) {
	return e.selectOne(ctx, "first", func() query.Result[Product] { return query.FirstOf(e.products, preds...) }, false)
}

// FirstOrDefault returns the first matching product or the zero Product.
func (e *Engine) FirstOrDefault(ctx context.Context, preds ...query.Predicate[Product]) Product {
	p, _ := e.selectOne(ctx, "first_or_default", func() query.Result[Product] { return query.FirstOf(e.products, preds...) }, true)
	return p
}

// Last returns the last matching product or NOT_FOUND.
func (e *Engine) Last(ctx context.Context, preds ...query.Predicate[Product]) (Product, error) {
	return e.selectOne(ctx, "last", func() query.Result[Product] { return query.LastOf(e.products, preds...) }, false)
}

// LastOrDefault returns the last matching product or the zero Product.
func (e *Engine) LastOrDefault(ctx context.Context, preds ...query.Predicate[Product]) Product {
	p, _ := e.selectOne(ctx, "last_or_default", func() query.Result[Product] { return query.LastOf(e.products, preds...) }, true)
	return p
}

// Single returns the only matching product, or NOT_FOUND / MULTIPLE_MATCHES.
func (e *Engine) Single(ctx context.Context, preds ...query.Predicate[Product]) (Product, error) {
	return e.selectOne(ctx, "single", func() query.Result[Product] { return query.SingleOf(e.products, preds...) }, false)
}

// SingleOrDefault returns the only matching product, the zero Product when
// nothing matches, or MULTIPLE_MATCHES.
func (e *Engine) SingleOrDefault(ctx context.Context, preds ...query.Predicate[Product]) (Product, error) {
	return e.selectOne(ctx, "single_or_default", func() query.Result[Product] { return query.SingleOf(e.products, preds...) }, true)
}

// selectOne runs sel inside the tracked operation so the scan is timed.
func (e *Engine) selectOne(ctx context.Context, op string, sel func() query.Result[Product], orDefault bool) (Product, error) {
	ctx, done := e.track(ctx, op)
	res := sel()
	var (
		p   Product
		err error
	)
	if orDefault {
		p, err = res.OrDefault()
	} else {
		p, err = res.Get()
	}
	done(ctx, boolCount(res.Found()), err, logger.FieldOutcome, res.Outcome.String())
	return p, err
}

type doneFunc func(ctx context.Context, count int, err error, kvs ...interface{})

// track opens an instrumented operation. The returned func logs the result
// at debug, or at warn when the operation failed.
func (e *Engine) track(ctx context.Context, op string) (context.Context, doneFunc) {
	start := time.Now()
	ctx, span := e.inst.Start(ctx, op)
	return ctx, func(ctx context.Context, count int, err error, kvs ...interface{}) {
		span.End(ctx, count, err)
		fields := logger.MergeFields(logger.OperationFields(op, count, time.Since(start)), logger.Fields(kvs...))
		log := e.log.WithContext(ctx)
		switch {
		case errors.HasCode(err, errors.ErrCodeNotFound):
			log.Warn("no product found", logger.MergeFields(fields, logger.ErrorFields(op, err)))
		case errors.HasCode(err, errors.ErrCodeMultipleMatches):
			log.Warn("more than one product matched", logger.MergeFields(fields, logger.ErrorFields(op, err)))
		case err != nil:
			log.Error("query failed", logger.MergeFields(fields, logger.ErrorFields(op, err)))
		default:
			log.Debug("query completed", fields)
		}
	}
}

func keyNames(keys []query.Key[Product]) []string {
	return query.Select(keys, func(k query.Key[Product]) string { return k.String() })
}

func boolCount(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
