// Package postgres implements the repositories on PostgreSQL through sqlx.
package postgres

import (
	"assetflow/models"
	"assetflow/repository"
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type Store struct {
	db    *sqlx.DB
	q     sqlx.ExtContext
	tx    *sqlx.Tx
	hooks *[]func()
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Assets() repository.AssetRepository               { return &AssetRepository{q: s.q} }
func (s *Store) Users() repository.UserRepository                 { return &UserRepository{q: s.q} }
func (s *Store) Requests() repository.RequestRepository           { return &RequestRepository{q: s.q} }
func (s *Store) Issues() repository.IssueRepository               { return &IssueRepository{q: s.q} }
func (s *Store) Notifications() repository.NotificationRepository { return &NotificationRepository{q: s.q} }

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) (err error) {
	if s.tx != nil {
		return fn(ctx, s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.NewInternalError(err, "failed to begin transaction")
	}
	hooks := make([]func(), 0)
	txStore := &Store{db: s.db, q: tx, tx: tx, hooks: &hooks}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			if commitErr := tx.Commit(); commitErr != nil {
				err = models.NewInternalError(commitErr, "failed to commit transaction")
				return
			}
			for _, hook := range hooks {
				hook()
			}
		}
	}()

	err = fn(ctx, txStore)
	return err
}

func (s *Store) OnCommit(fn func()) {
	if s.tx == nil {
		fn()
		return
	}
	*s.hooks = append(*s.hooks, fn)
}

const uniqueViolation = "23505"

// mapError turns driver errors into taxonomy errors. sql.ErrNoRows becomes NotFound with
// notFoundMsg, unique violations become Conflict.
func mapError(err error, notFoundMsg, failMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewNotFoundError("%s", notFoundMsg)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.NewConflictError("%s: %s already exists", failMsg, pqErr.Constraint)
	}
	return models.NewInternalError(errors.Wrap(err, failMsg), failMsg)
}

func rowsAffected(res sql.Result, notFoundMsg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return models.NewInternalError(err, "failed to fetch rows affected")
	}
	if n == 0 {
		return models.NewNotFoundError("%s", notFoundMsg)
	}
	return nil
}

func notFoundf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
