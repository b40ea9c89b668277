// Package prefs persists small string settings, such as the last city a user
// looked up, in a SQLite database.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// LastCityKey is the key under which the last looked up city is saved.
const LastCityKey = "key"

// Preference is a single key/value row.
type Preference struct {
	bun.BaseModel `bun:"table:preferences"`

	Name      string    `bun:"name,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Store is a key/value store over bun.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

// Open opens (or creates) the SQLite database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer
	sqldb.SetMaxOpenConns(1)

	s := NewStore(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing bun database. Call Migrate before use.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates the preferences table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Preference)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Save stores value under key, replacing any previous value.
func (s *Store) Save(ctx context.Context, key, value string) error {
	p := &Preference{Name: key, Value: value, UpdatedAt: s.now().UTC()}
	_, err := s.db.NewInsert().
		Model(p).
		On("CONFLICT (name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// Load returns the value stored under key. The boolean is false when the key is unknown.
func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	p := new(Preference)
	err := s.db.NewSelect().
		Model(p).
		Where("name = ?", key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return p.Value, true, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
