package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/logger"
	calerrors "github.com/alexisbeaulieu97/calgrid/pkg/errors"
)

// selectionRecord is one row of the selection_records table.
type selectionRecord struct {
	ID        uint               `gorm:"primaryKey"`
	Calendar  string             `gorm:"uniqueIndex;not null"`
	Selection calendar.Selection `gorm:"type:text;serializer:json"`
	Month     string             `gorm:"size:7"`
	UpdatedAt time.Time
}

func (selectionRecord) TableName() string {
	return "selection_records"
}

func (r selectionRecord) state() (State, error) {
	month, err := calendar.ParseMonth(r.Month)
	if err != nil {
		return State{}, err
	}
	return State{
		Calendar:  r.Calendar,
		Selection: r.Selection,
		Month:     month,
		UpdatedAt: r.UpdatedAt.UTC(),
	}, nil
}

// SQLStore keeps calendars in a SQLite database through gorm. Writes from this
// process are serialized; SQLite's busy timeout orders them against others.
type SQLStore struct {
	db  *gorm.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLStore opens (or creates) the database at path and migrates its schema.
// gorm warnings and errors go to log; a nil log discards them.
func NewSQLStore(path string, log *logger.Logger) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, calerrors.NewStoreError("", "create db directory", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", path)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLogger(log, gormlogger.Warn),
	})
	if err != nil {
		return nil, calerrors.NewStoreError("", "open sqlite", err)
	}

	if err := database.AutoMigrate(&selectionRecord{}); err != nil {
		return nil, calerrors.NewStoreError("", "migrate", err)
	}

	return &SQLStore{db: database, now: time.Now}, nil
}

// Get returns the state stored under name.
func (s *SQLStore) Get(ctx context.Context, name string) (State, bool, error) {
	return getRecord(s.db.WithContext(ctx), name)
}

func getRecord(db *gorm.DB, name string) (State, bool, error) {
	var record selectionRecord
	err := db.Where("calendar = ?", name).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, calerrors.NewStoreError(name, "get", err)
	}

	state, err := record.state()
	if err != nil {
		return State{}, false, calerrors.NewStoreError(name, "decode", err)
	}
	return state, true, nil
}

// Put inserts or replaces the row for state.Calendar.
func (s *SQLStore) Put(ctx context.Context, state State) error {
	state, err := prepare(state, s.now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return upsertRecord(s.db.WithContext(ctx), state)
}

// Update runs fn on the current row of name and writes its result in one
// transaction.
func (s *SQLStore) Update(ctx context.Context, name string, fn UpdateFunc) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored State
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, ok, err := getRecord(tx, name)
		if err != nil {
			return err
		}
		next, err := fn(current, ok)
		if err != nil {
			return err
		}
		next.Calendar = name
		if next, err = prepare(next, s.now()); err != nil {
			return err
		}
		if err := upsertRecord(tx, next); err != nil {
			return err
		}
		stored = next
		return nil
	})
	if err != nil {
		return State{}, err
	}
	return stored, nil
}

func upsertRecord(db *gorm.DB, state State) error {
	record := selectionRecord{
		Calendar:  state.Calendar,
		Selection: state.Selection,
		Month:     state.Month.String(),
		UpdatedAt: state.UpdatedAt,
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "calendar"}},
		DoUpdates: clause.AssignmentColumns([]string{"selection", "month", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return calerrors.NewStoreError(state.Calendar, "put", err)
	}
	return nil
}

// Delete removes name. Deleting an unknown calendar is not an error.
func (s *SQLStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Where("calendar = ?", name).Delete(&selectionRecord{}).Error; err != nil {
		return calerrors.NewStoreError(name, "delete", err)
	}
	return nil
}

// List returns every stored calendar ordered by name.
func (s *SQLStore) List(ctx context.Context) ([]State, error) {
	var records []selectionRecord
	if err := s.db.WithContext(ctx).Order("calendar").Find(&records).Error; err != nil {
		return nil, calerrors.NewStoreError("", "list", err)
	}

	out := make([]State, 0, len(records))
	for _, record := range records {
		state, err := record.state()
		if err != nil {
			return nil, calerrors.NewStoreError(record.Calendar, "decode", err)
		}
		out = append(out, state)
	}
	return out, nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return calerrors.NewStoreError("", "close", err)
	}
	return sqlDB.Close()
}
