package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gatherly/internal/domain"
)

type repositories struct {
	db DBTX
}

func (r repositories) Members() domain.MemberRepository         { return NewMemberRepository(r.db) }
func (r repositories) Gatherings() domain.GatheringRepository   { return NewGatheringRepository(r.db) }
func (r repositories) Invitations() domain.InvitationRepository { return NewInvitationRepository(r.db) }
func (r repositories) Attendees() domain.AttendeeRepository     { return NewAttendeeRepository(r.db) }

// Store is the PostgreSQL unit of work. Repositories obtained directly from Store run
// outside any transaction; those handed to WithinTx share one *sql.Tx.
type Store struct {
	repositories
	DB *sql.DB
}

// NewStore returns a Store using db.
func NewStore(db *sql.DB) *Store {
	return &Store{
		repositories: repositories{db: db},
		DB:           db,
	}
}

// WithinTx runs fn in a transaction and commits when fn returns nil.
// Unique, serialization and deadlock failures are reported as domain.ErrConcurrencyConflict;
// begin and commit failures as domain.ErrPersistence.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Repositories) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", domain.ErrPersistence, err)
	}
	// Rollback after a successful Commit returns sql.ErrTxDone and is ignored.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, repositories{db: tx}); err != nil {
		return mapError(err)
	}

	if err := tx.Commit(); err != nil {
		if isConflict(err) {
			return mapError(err)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: commit: %w", domain.ErrPersistence, err)
	}
	return nil
}
