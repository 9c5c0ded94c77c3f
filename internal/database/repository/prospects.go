package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hotprospects/hotprospects/internal/database"
)

// ErrNotFound is returned by mutations that match no row.
var ErrNotFound = errors.New("prospect not found")

// ProspectFilters defines list filters. Nil fields do not filter.
type ProspectFilters struct {
	Contacted *bool
}

const prospectColumns = "seq, id, name, email_address, is_contacted, is_pinned, created_at"

// ProspectRepo handles prospects.
type ProspectRepo struct {
	db *sqlx.DB
}

func NewProspectRepo(db *sqlx.DB) *ProspectRepo { return &ProspectRepo{db: db} }

// Insert stores p and returns it with ID, Seq and CreatedAt assigned.
// A non-empty p.ID is kept as is.
func (r *ProspectRepo) Insert(ctx context.Context, p Prospect) (Prospect, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = database.Now()
	}
	res, err := r.db.NamedExecContext(ctx, `
	INSERT INTO prospects(id, name, email_address, is_contacted, is_pinned, created_at)
	VALUES (:id, :name, :email_address, :is_contacted, :is_pinned, :created_at);
	`, p)
	if err != nil {
		return Prospect{}, err
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return Prospect{}, err
	}
	p.Seq = seq
	return p, nil
}

// List returns prospects ordered by name, then insertion order. Names compare
// with the root Unicode collation, so case and accents do not push a name
// past the end of the alphabet.
func (r *ProspectRepo) List(ctx context.Context, f ProspectFilters) ([]Prospect, error) {
	var where []string
	var args []interface{}

	if f.Contacted != nil {
		where = append(where, "is_contacted = ?")
		args = append(args, *f.Contacted)
	}

	query := "SELECT " + prospectColumns + " FROM prospects"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq ASC"

	out := []Prospect{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	sortByName(out)
	return out, nil
}

// sortByName orders list by name; list must already be in seq order so the
// stable sort keeps insertion order for equal names.
func sortByName(list []Prospect) {
	c := collate.New(language.Und)
	sort.SliceStable(list, func(i, j int) bool {
		return c.CompareString(list[i].Name, list[j].Name) < 0
	})
}

func (r *ProspectRepo) Get(ctx context.Context, id string) (*Prospect, error) {
	var p Prospect
	err := r.db.GetContext(ctx, &p, "SELECT "+prospectColumns+" FROM prospects WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProspectRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM prospects")
	return n, err
}

func (r *ProspectRepo) SetContacted(ctx context.Context, id string, contacted bool) error {
	return exec(ctx, r.db, `UPDATE prospects SET is_contacted = ? WHERE id = ?`, contacted, id)
}

func (r *ProspectRepo) SetPinned(ctx context.Context, id string, pinned bool) error {
	return exec(ctx, r.db, `UPDATE prospects SET is_pinned = ? WHERE id = ?`, pinned, id)
}

func (r *ProspectRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.db, `DELETE FROM prospects WHERE id = ?`, id)
}

// DeleteMany removes every id in one transaction. A missing id rolls back
// the whole call.
func (r *ProspectRepo) DeleteMany(ctx context.Context, ids ...string) error {
	return database.WithTx(r.db, func(tx *sqlx.Tx) error {
		for _, id := range ids {
			if err := exec(ctx, tx, `DELETE FROM prospects WHERE id = ?`, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetContactedMany updates every id in one transaction. A missing id rolls
// back the whole call.
func (r *ProspectRepo) SetContactedMany(ctx context.Context, contacted bool, ids ...string) error {
	return database.WithTx(r.db, func(tx *sqlx.Tx) error {
		for _, id := range ids {
			if err := exec(ctx, tx, `UPDATE prospects SET is_contacted = ? WHERE id = ?`, contacted, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAll removes every prospect inside tx and reports how many went.
func (r *ProspectRepo) DeleteAll(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM prospects`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func exec(ctx context.Context, e sqlx.ExecerContext, query string, args ...interface{}) error {
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %v", ErrNotFound, args[len(args)-1])
	}
	return nil
}
