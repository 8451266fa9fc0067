/*
Package store persists trained model collections in an SQLite database.
*/
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/Ghostkeeper/R2D2/fu"
	"github.com/Ghostkeeper/R2D2/model/ensemble"
	"github.com/Ghostkeeper/R2D2/settings"
	"github.com/Ghostkeeper/R2D2/training"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/zorros"
)

const (
	modelsTableCreateStmt = `CREATE TABLE IF NOT EXISTS models (
		label TEXT PRIMARY KEY,
		setting TEXT NOT NULL,
		option TEXT NOT NULL,
		features TEXT NOT NULL,
		highest_exponent INTEGER NOT NULL,
		aggregation TEXT NOT NULL,
		coefficients TEXT NOT NULL,
		best INTEGER NOT NULL,
		score REAL NOT NULL,
		trained_at TEXT NOT NULL)`
	membersTableCreateStmt = `CREATE TABLE IF NOT EXISTS members (
		label TEXT NOT NULL REFERENCES models(label) ON DELETE CASCADE,
		bag INTEGER NOT NULL,
		train TEXT NOT NULL,
		test TEXT NOT NULL,
		coefficients TEXT NOT NULL,
		efficacy REAL NOT NULL,
		error REAL NOT NULL,
		PRIMARY KEY (label, bag))`
)

/*
DefaultPath is the database file in the local models cache
*/
func DefaultPath() string {
	return fu.ModelPath("r2d2.sqlite")
}

/*
Store is a database of trained models
*/
type Store struct {
	db *sql.DB
}

/*
Open opens or creates the database at path
*/
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open model store %v: %v", path, err.Error())
	}
	for _, stmt := range []string{modelsTableCreateStmt, membersTableCreateStmt} {
		if _, err = db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, zorros.Wrapf(err, "failed to prepare model store %v: %v", path, err.Error())
		}
	}
	db.SetMaxOpenConns(1)
	return &Store{db}, nil
}

// every pooled connection enforces the members foreign key
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

/*
Close closes the database
*/
func (s *Store) Close() error {
	return s.db.Close()
}

/*
Save replaces all stored models by the models of the collection
*/
func (s *Store) Save(ctx context.Context, c *training.Collection) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zorros.Trace(err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM members"); err != nil {
		return zorros.Trace(err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM models"); err != nil {
		return zorros.Trace(err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, l := range c.Labels() {
		m := c.Models[l]
		enc := encoder{}
		args := []interface{}{l.String(), l.Setting, l.Option, enc.json(m.Features), m.HighestExponent,
			m.Aggregation, enc.json(m.Coefficients), m.Best, m.Score, now}
		if err = enc.err; err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO models (label, setting, option, features, highest_exponent, aggregation, coefficients, best, score, trained_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...); err != nil {
			return zorros.Wrapf(err, "failed to save model %v: %v", l, err.Error())
		}
		for _, x := range m.Members {
			args = []interface{}{l.String(), x.Bag.Index, enc.json(x.Bag.Train), enc.json(x.Bag.Test),
				enc.json(x.Coefficients), x.Efficacy, x.Error}
			if err = enc.err; err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO members (label, bag, train, test, coefficients, efficacy, error) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				args...); err != nil {
				return zorros.Wrapf(err, "failed to save model %v bag %d: %v", l, x.Bag.Index, err.Error())
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
Load returns a collection of all stored models
*/
func (s *Store) Load(ctx context.Context) (*training.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, features, highest_exponent, aggregation, coefficients, best, score FROM models`)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	c := training.NewCollection()
	for rows.Next() {
		var features, coefficients string
		m := &ensemble.Model{}
		if err = rows.Scan(&m.Label, &features, &m.HighestExponent, &m.Aggregation, &coefficients, &m.Best, &m.Score); err != nil {
			return nil, zorros.Trace(err)
		}
		l := settings.ParseLabel(m.Label)
		if err = unmarshal(features, &m.Features); err != nil {
			return nil, err
		}
		if err = unmarshal(coefficients, &m.Coefficients); err != nil {
			return nil, err
		}
		c.Models[l] = m
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	for l, m := range c.Models {
		if m.Members, err = s.members(ctx, l); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (s *Store) members(ctx context.Context, l settings.Label) ([]ensemble.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bag, train, test, coefficients, efficacy, error FROM members WHERE label = ? ORDER BY bag`, l.String())
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	var r []ensemble.Member
	for rows.Next() {
		var train, test, coefficients string
		var x ensemble.Member
		if err = rows.Scan(&x.Bag.Index, &train, &test, &coefficients, &x.Efficacy, &x.Error); err != nil {
			return nil, zorros.Trace(err)
		}
		for _, q := range []struct {
			s string
			v interface{}
		}{{train, &x.Bag.Train}, {test, &x.Bag.Test}, {coefficients, &x.Coefficients}} {
			if err = unmarshal(q.s, q.v); err != nil {
				return nil, err
			}
		}
		r = append(r, x)
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	return r, nil
}

// encoder keeps the first encoding error
type encoder struct {
	err error
}

func (e *encoder) json(v interface{}) string {
	if e.err != nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		e.err = zorros.Wrapf(err, "failed to encode stored value: %v", err.Error())
		return ""
	}
	return string(b)
}

func unmarshal(s string, v interface{}) error {
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return zorros.Wrapf(err, "malformed stored value: %v", err.Error())
	}
	return nil
}
