package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"reviewwatch/internal/logging"
)

const sqliteFile = "state.db"

// saveBatchSize keeps each upsert under SQLite's bound-variable limit.
const saveBatchSize = 500

// NotifiedPullRequest is one NotificationRecord entry.
type NotifiedPullRequest struct {
	URL          string `gorm:"primaryKey"`
	LastUpdateMs int64  `gorm:"not null"`
	UpdatedAt    time.Time
}

// gormLogger routes GORM messages to the application logger
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		logging.Logger().Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		logging.Logger().Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		logging.Logger().Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	sql, rows := fc()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger().Error("gorm query error", "error", err, "duration", time.Since(begin), "sql", sql, "rows", rows)
		return
	}
	logging.Logger().Debug("gorm query", "duration", time.Since(begin), "sql", sql, "rows", rows)
}

// SQLiteStore keeps the NotificationRecord in a SQLite table, one row per
// pull request URL.
type SQLiteStore struct {
	db *gorm.DB
}

// SQLitePath returns the database path used for dir.
func SQLitePath(dir string) string {
	if dir == "" {
		dir = DefaultDir()
	}
	return filepath.Join(dir, sqliteFile)
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	level := logger.Silent
	if logging.DebugEnabled() {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  (&gormLogger{}).LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets a `status` run read while `watch` writes.
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	if err := db.AutoMigrate(&NotifiedPullRequest{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (NotificationRecord, error) {
	var rows []NotifiedPullRequest
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load notification record: %w", err)
	}

	record := make(NotificationRecord, len(rows))
	for _, row := range rows {
		record[row.URL] = row.LastUpdateMs
	}
	return record, nil
}

// Save upserts every entry of record in one transaction, in batches of
// saveBatchSize rows. Rows for URLs not in record are left alone, so Save
// never drops entries.
func (s *SQLiteStore) Save(ctx context.Context, record NotificationRecord) error {
	if len(record) == 0 {
		return nil
	}

	rows := make([]NotifiedPullRequest, 0, len(record))
	for url, ms := range record {
		rows = append(rows, NotifiedPullRequest{URL: url, LastUpdateMs: ms})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_update_ms", "updated_at"}),
		}).CreateInBatches(&rows, saveBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save notification record: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ RecordStore = (*SQLiteStore)(nil)
