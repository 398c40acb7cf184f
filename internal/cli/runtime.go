package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-social/fixtures"
	"github.com/goliatone/go-social/migrations"
	"github.com/goliatone/go-social/pkg/config"
	"github.com/goliatone/go-social/pkg/logging"
	"github.com/goliatone/go-social/pkg/metrics"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/scope"
	"github.com/goliatone/go-social/service"
	"github.com/goliatone/go-social/sqlstore"
	"github.com/goliatone/go-social/store"
)

// runtime is the per-invocation wiring: the memory store seeded from the
// configured source, the service over it and, for DSN sources, the SQL
// repository that receives writes.
type runtime struct {
	opts    *RootOptions
	logger  *logging.Logger
	mem     *store.Memory
	svc     *service.Service
	db      *bun.DB
	dataset *sqlstore.Repository
}

func openRuntime(ctx context.Context, opts *RootOptions) (*runtime, error) {
	rt, err := newRuntime(opts)
	if err != nil {
		return nil, err
	}
	if opts.DSN != "" {
		if err := rt.connect(ctx); err != nil {
			rt.Close()
			return nil, err
		}
		if err := rt.dataset.LoadInto(ctx, rt.mem); err != nil {
			rt.Close()
			return nil, commandError("load dataset", err)
		}
	} else if err := rt.seedFromFixtures(ctx); err != nil {
		rt.Close()
		return nil, err
	}
	rt.svc = service.New(service.Config{
		Store:       rt.mem,
		FeatureGate: config.NewFeatureGate(opts.Features...),
		Logger:      rt.logger,
		Metrics:     metrics.New(prometheus.NewRegistry()),
	})
	return rt, nil
}

func newRuntime(opts *RootOptions) (*runtime, error) {
	zl, err := logging.NewForEnv(opts.Env)
	if err != nil {
		return nil, commandError("build logger", err)
	}
	return &runtime{
		opts:   opts,
		logger: logging.New(zl),
		mem:    store.NewMemory(),
	}, nil
}

func (rt *runtime) connect(ctx context.Context) error {
	cfg, err := config.NewPersistenceConfig(rt.opts.Env, rt.opts.DSN)
	if err != nil {
		return commandError("parse dsn", err)
	}
	db, err := migrations.Open(ctx, cfg, rt.logger)
	if err != nil {
		return commandError("open database", err)
	}
	rt.db = db
	repo, err := sqlstore.New(sqlstore.Config{DB: db, Logger: rt.logger})
	if err != nil {
		return commandError("build repository", err)
	}
	rt.dataset = repo
	return nil
}

func (rt *runtime) seedFromFixtures(ctx context.Context) error {
	var (
		ds  store.Dataset
		err error
	)
	if rt.opts.Fixtures != "" {
		ds, err = fixtures.LoadFile(rt.opts.Fixtures)
	} else {
		ds, err = fixtures.Sample()
	}
	if err != nil {
		return commandError("load fixtures", err)
	}
	if err := rt.mem.Seed(ctx, ds); err != nil {
		return commandError("seed store", err)
	}
	return nil
}

func (rt *runtime) token() types.SecurityToken {
	return scope.StaticToken{
		Viewer: rt.opts.Viewer,
		Owner:  rt.opts.Owner,
		App:    rt.opts.App,
	}
}

// persist writes the store back to the database. Fixture-backed runs keep
// their changes in memory only.
func (rt *runtime) persist(ctx context.Context) error {
	if rt.dataset == nil {
		return nil
	}
	if err := rt.dataset.Save(ctx, rt.mem.Snapshot(ctx)); err != nil {
		return commandError("save dataset", err)
	}
	return nil
}

// Close releases the database and flushes the logger.
func (rt *runtime) Close() {
	if rt.db != nil {
		_ = rt.db.Close()
	}
	_ = rt.logger.Sync()
}
