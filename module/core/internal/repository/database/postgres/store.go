package postgres

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/nandanugg/vendor-radar/module/core/domain"
	"github.com/nandanugg/vendor-radar/module/core/internal/repository/database"
)

var _ database.Store = (*Store)(nil)

// repo holds the queries; q is either the pool or an open transaction.
type repo struct {
	q sqlx.ExtContext
}

type Store struct {
	repo
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{repo: repo{q: db}, db: db}
}

func (s *Store) RunInTx(ctx context.Context, fn func(tx database.StatusTx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return persistenceErr(err, "begin tx")
	}

	if err := fn(&repo{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return persistenceErr(err, "commit tx")
	}
	return nil
}

func persistenceErr(err error, op string) error {
	return errors.Mark(errors.Wrap(err, op), domain.ErrPersistence)
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Mark(errors.Wrap(err, op), domain.ErrNotFound)
	}
	return persistenceErr(err, op)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
