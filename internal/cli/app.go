package cli

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/kbukum/prodquery/catalog"
	"github.com/kbukum/prodquery/component"
	"github.com/kbukum/prodquery/config"
	"github.com/kbukum/prodquery/errors"
	"github.com/kbukum/prodquery/logger"
	"github.com/kbukum/prodquery/observability"
	"github.com/kbukum/prodquery/version"
)

// globalFlags are the persistent root flags; non-empty values override config.
type globalFlags struct {
	configFile string
	seedFile   string
	logLevel   string
	logFormat  string
	trace      bool
	metrics    bool
}

// app is the per-invocation state shared by subcommands.
type app struct {
	cfg        config.Config
	log        *logger.Logger
	ctx        context.Context
	engine     *catalog.Engine
	components *component.Registry
}

func newApp(ctx context.Context, flags globalFlags, logOut io.Writer) (*app, error) {
	var opts []config.LoaderOption
	if flags.configFile != "" {
		opts = append(opts, config.WithConfigFile(flags.configFile))
	}
	a := &app{}
	if err := config.Load("prodquery", &a.cfg, opts...); err != nil {
		return nil, err
	}
	applyFlags(&a.cfg, flags)
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	if logOut != nil {
		a.log = logger.NewWithWriter(&a.cfg.Logging, a.cfg.Name, logOut)
	} else {
		a.log = logger.New(&a.cfg.Logging, a.cfg.Name)
	}
	logger.SetGlobalLogger(a.log)
	logger.Register("catalog", a.log.WithComponent("catalog"))

	a.ctx = logger.ContextWithCorrelationID(ctx, uuid.NewString())
	a.log.WithContext(a.ctx).Debug("starting", logger.Fields(
		"version", version.Get().Short(),
		"environment", a.cfg.Environment,
	))

	a.components = component.NewRegistry(a.log)
	if err := a.registerObservability(); err != nil {
		return nil, err
	}

	var provider catalog.SeedProvider = catalog.StaticProvider{}
	if a.cfg.Seed.File != "" {
		provider = catalog.FileProvider{Path: a.cfg.Seed.File}
	}
	// Instruments resolve the global providers, so they are built after
	// the observability components have started.
	cat := catalog.NewComponent(provider, catalog.WithLogger(logger.Get("catalog")))
	if err := a.components.Register(cat); err != nil {
		return nil, err
	}

	if err := a.components.StartAll(a.ctx); err != nil {
		_ = a.components.StopAll(a.ctx)
		return nil, unwrapStart(err)
	}
	a.engine = cat.Engine()
	return a, nil
}

func applyFlags(cfg *config.Config, flags globalFlags) {
	if flags.seedFile != "" {
		cfg.Seed.File = flags.seedFile
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}
	if flags.trace {
		cfg.Observability.Tracing = true
	}
	if flags.metrics {
		cfg.Observability.Metrics = true
	}
}

func (a *app) registerObservability() error {
	obs := a.cfg.Observability
	if obs.Tracing {
		tc := observability.DefaultTracerConfig(a.cfg.Name)
		tc.ServiceVersion = version.Get().Short()
		tc.Environment = a.cfg.Environment
		tc.SampleRate = obs.Rate()
		if err := a.components.Register(observability.NewTracingComponent(tc, a.log)); err != nil {
			return err
		}
	}
	if obs.Metrics {
		mc := observability.DefaultMeterConfig(a.cfg.Name)
		mc.ServiceVersion = version.Get().Short()
		mc.Environment = a.cfg.Environment
		if err := a.components.Register(observability.NewMetricsComponent(mc, a.log)); err != nil {
			return err
		}
	}
	return nil
}

// unwrapStart surfaces the AppError behind a component start failure so the
// command reports the seed error itself.
func unwrapStart(err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	return err
}

// close stops every component, reporting collected metrics on the way.
func (a *app) close() error {
	return a.components.StopAll(a.ctx)
}
