package container

import (
	"context"
	"fmt"
	"log/slog"

	"isingmc/adapters/memory"
	"isingmc/adapters/postgres"
	"isingmc/adapters/sink"
	"isingmc/app"
	"isingmc/domain/run"
	"isingmc/internal/config"
	"isingmc/internal/errors"
	"isingmc/internal/migration"
	"isingmc/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB *sqlx.DB

	// Run ledger: PostgreSQL when a database is configured, memory otherwise
	Ledger ports.RunLedger

	// Services
	Simulation *app.SimulationService
	Scan       *app.ScanService
	Summary    *app.SummaryService

	codeVersion string
}

// New creates a container backed by an in-memory ledger
func New(cfg *config.Config, logger *slog.Logger, codeVersion string) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		codeVersion: codeVersion,
	}
	c.wire(memory.NewRunLedger())
	return c, nil
}

// Init connects the configured database, if any
func (c *Container) Init(ctx context.Context) error {
	if c.Config.Database.URL == "" {
		c.Logger.Debug("no database configured, keeping run ledger in memory")
		return nil
	}

	db, err := OpenDatabase(ctx, c.Config.Database.URL)
	if err != nil {
		return err
	}
	return c.InitWithDatabase(db)
}

// InitWithDatabase switches the ledger to PostgreSQL
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db
	c.wire(postgres.NewRunLedger(db))
	c.Logger.Debug("run ledger backed by postgres")
	return nil
}

func (c *Container) wire(ledger ports.RunLedger) {
	c.Ledger = ledger
	c.Simulation = app.NewSimulationService(c.Logger, c.codeVersion).WithLedger(ledger)
	c.Scan = app.NewScanService(c.Simulation, FileSinks, c.Logger)
	c.Summary = app.NewSummaryService(sink.ReadFile)
}

// FileSinks opens file-backed sample sinks
func FileSinks(path string, mode run.OutputMode) (ports.SampleSink, error) {
	return sink.Create(path, mode)
}

// OpenDatabase connects to PostgreSQL and applies migrations
func OpenDatabase(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.DatabaseError("failed to ping database", err)
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.DatabaseError("database migration failed", err)
	}

	return db, nil
}

// Shutdown releases the database connection
func (c *Container) Shutdown() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
