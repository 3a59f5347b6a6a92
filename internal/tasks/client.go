package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// Client runs background tasks on a backlite queue stored in its own sqlite
// database, so long-running task transactions never lock the books table.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config
	log    *zap.Logger

	running atomic.Bool
}

// TasksDBPath returns the path of the task database: the main database path
// with a "-tasks" suffix before the extension.
func TasksDBPath(mainDBPath string) string {
	ext := filepath.Ext(mainDBPath)
	return strings.TrimSuffix(mainDBPath, ext) + "-tasks" + ext
}

func openTasksDB(path string, workers int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// Workers plus headroom for enqueueing from request handlers
	db.SetMaxOpenConns(workers + 5)
	db.SetMaxIdleConns(workers + 2)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// NewClient opens the task database next to mainDBPath and installs the
// backlite schema. Queues must be registered before Start.
func NewClient(mainDBPath string, cfg Config, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	log = log.Named("tasks")

	path := TasksDBPath(mainDBPath)
	db, err := openTasksDB(path, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("open tasks database %s: %w", path, err)
	}

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &zapLogger{log: log},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create backlite client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("install backlite schema: %w", err)
	}

	return &Client{
		client: client,
		db:     db,
		config: cfg,
		log:    log,
	}, nil
}

// Register adds queues to the client.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start begins processing tasks until ctx is cancelled or Stop is called.
// Calling Start on a running client does nothing.
func (c *Client) Start(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	c.log.Info("task queue started", zap.Int("workers", c.config.Workers))
	c.client.Start(ctx)
}

// Running reports whether Start has been called and Stop has not.
func (c *Client) Running() bool {
	return c.running.Load()
}

// Stop waits for in-flight tasks until ctx expires. Returns false when some
// workers were still busy at the deadline.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.running.CompareAndSwap(true, false) {
		return true
	}

	ok := c.client.Stop(ctx)
	if ok {
		c.log.Info("task queue stopped")
	} else {
		c.log.Warn("task queue stopped before all tasks completed")
	}
	return ok
}

// Close releases the task database. Call after Stop.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Add starts an operation to enqueue one or more tasks.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

// Enqueue saves tasks for immediate processing and returns their ids.
func (c *Client) Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error) {
	ids, err := c.client.Add(tasks...).Ctx(ctx).Save()
	if err != nil {
		return nil, fmt.Errorf("enqueue tasks: %w", err)
	}
	return ids, nil
}

// zapLogger implements backlite.Logger. backlite passes key/value pairs,
// which map onto the sugared logger's loosely typed fields.
type zapLogger struct {
	log *zap.Logger
}

func (l *zapLogger) Info(message string, params ...any) {
	l.log.Sugar().Infow(message, params...)
}

func (l *zapLogger) Error(message string, params ...any) {
	l.log.Sugar().Errorw(message, params...)
}
