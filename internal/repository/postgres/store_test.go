package postgres

import (
	"context"
	"errors"
	"testing"

	"gatherly/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		fn      func(ctx context.Context, tx domain.Repositories) error
		wantErr error
	}{
		{
			name: "commits when fn succeeds",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE gatherings SET number_of_attendees`).
					WithArgs(1, "g-1", 0).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx domain.Repositories) error {
				_, err := tx.Gatherings().UpdateAttendance(ctx, &domain.Gathering{ID: "g-1", NumberOfAttendees: 1}, 0)
				return err
			},
		},
		{
			name: "rolls back when fn fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:      func(context.Context, domain.Repositories) error { return boom },
			wantErr: boom,
		},
		{
			name: "serialization failure is a conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO attendees`).
					WillReturnError(&pq.Error{Code: codeSerializationFailure})
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context, tx domain.Repositories) error {
				return tx.Attendees().Add(ctx, &domain.Attendee{MemberID: "m-1", GatheringID: "g-1"})
			},
			wantErr: domain.ErrConcurrencyConflict,
		},
		{
			name: "commit failure is a persistence error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("connection reset"))
			},
			fn:      func(context.Context, domain.Repositories) error { return nil },
			wantErr: domain.ErrPersistence,
		},
		{
			name: "deadlock on commit is a conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(&pq.Error{Code: codeDeadlockDetected})
			},
			fn:      func(context.Context, domain.Repositories) error { return nil },
			wantErr: domain.ErrConcurrencyConflict,
		},
		{
			name: "begin failure is a persistence error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
			},
			fn:      func(context.Context, domain.Repositories) error { return nil },
			wantErr: domain.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			store := NewStore(db)
			err = store.WithinTx(ctx, tt.fn)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_repositoriesOutsideTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, member_id`).WithArgs("i-1").WillReturnError(errors.New("down"))

	store := NewStore(db)
	_, err = store.Invitations().GetByID(context.Background(), "i-1")
	assert.EqualError(t, err, "down")
	require.NoError(t, mock.ExpectationsWereMet())
}
