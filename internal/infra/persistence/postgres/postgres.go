// Package postgres contains the concrete implementation of the persistence layer using GORM.
// PostgreSQL is the production store; SQLite backs local development and tests.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"finsync/config"
	"finsync/internal/domain/constants"
	"finsync/internal/domain/lifecycle"
	"finsync/internal/errors"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond

	defaultSQLitePath = "finsync.db"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database and ties its lifetime to the fx lifecycle.
// The schema is migrated on start when postgres.autoMigrate is set.
func New(params Params) (*gorm.DB, error) {
	dbCfg := params.Config.Postgres
	db, err := Open(dbCfg, newGormSlogLogger(params.Logger, params.Config))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping database")
			}

			if dbCfg.AutoMigrate {
				if err := Migrate(ctx, db); err != nil {
					return err
				}
				params.Logger.Info("Database schema is up to date", slog.String("driver", db.Name()))
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to the driver named in cfg without starting any background work.
func Open(cfg *config.DBConfig, gormLogger logger.Interface) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		// Multi-step atomic work goes through txManager.Execute instead.
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	switch strings.ToLower(cfg.Driver) {
	case constants.DriverSQLite:
		return openSQLite(cfg, gormCfg)
	case "", constants.DriverPostgres:
		return openPostgres(cfg, gormCfg)
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openPostgres(cfg *config.DBConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.MasterDSN()), gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	if replicaDSNs := cfg.ReplicaDSNs(); len(replicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(replicaDSNs))
		for _, dsn := range replicaDSNs {
			replicas = append(replicas, postgres.Open(dsn))
		}

		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})
		applyPoolToResolver(resolver, cfg)

		if err := db.Use(resolver); err != nil {
			return nil, errors.Wrap(err, "failed to register read replicas")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	applyPool(sqlDB, cfg)

	return db, nil
}

func openSQLite(cfg *config.DBConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = defaultSQLitePath
	}

	db, err := gorm.Open(sqlite.Open(path+sqlitePragmas(path)), gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	// One connection serializes writers, which also makes registration locking unnecessary.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func sqlitePragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func applyPool(sqlDB *sql.DB, cfg *config.DBConfig) {
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

func applyPoolToResolver(resolver *dbresolver.DBResolver, cfg *config.DBConfig) {
	if cfg.MaxIdleConns > 0 {
		resolver.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		resolver.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		resolver.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Database pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Database pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
