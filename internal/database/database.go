package database

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookapi/internal/entities"
	"github.com/mrlokans/bookapi/internal/logging"
)

// SlowQueryThreshold is the duration above which gorm reports a query as slow.
const SlowQueryThreshold = 200 * time.Millisecond

type Database struct {
	DB *gorm.DB

	log          *zap.Logger
	openSessions atomic.Int64
}

// NewDatabase opens the sqlite database at dbPath and migrates the schema.
// A nil logger silences gorm and the database's own messages.
func NewDatabase(dbPath string, log *zap.Logger) (*Database, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dialector := sqlite.New(sqlite.Config{
		DriverName: DriverName,
		DSN:        dsn(dbPath),
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database initialized", zap.String("path", dbPath))

	return &Database{DB: db, log: log}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

var dsnOptions = []struct{ key, value string }{
	{"_busy_timeout", "5000"},
	{"_txlock", "immediate"},
}

// dsn appends connection options understood by the sqlite3 driver unless the
// path already sets them. Write transactions take the write lock at BEGIN, so
// concurrent writers wait out the busy timeout instead of failing on a lock
// upgrade.
func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	for _, opt := range dsnOptions {
		if strings.Contains(path, opt.key+"=") {
			continue
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + opt.key + "=" + opt.value
	}
	return path
}

func newGormLogger(log *zap.Logger) logger.Interface {
	level := logger.Warn
	if !log.Core().Enabled(zapcore.WarnLevel) {
		level = logger.Silent
	}
	return logger.New(logging.StdLogger(log.Named("gorm"), zapcore.WarnLevel), logger.Config{
		SlowThreshold:             SlowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
