package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gatherly/internal/domain"
)

type invitationRepository struct {
	DB DBTX
}

func NewInvitationRepository(db DBTX) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `
		SELECT id, member_id, gathering_id, status, created_at, modified_at
		FROM invitations
		WHERE id = $1
	`
	inv := &domain.Invitation{}
	var modifiedNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.MemberID, &inv.GatheringID, &inv.Status, &inv.CreatedAt, &modifiedNull,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if modifiedNull.Valid {
		inv.ModifiedAt = &modifiedNull.Time
	}
	return inv, nil
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, inv *domain.Invitation, from domain.InvitationStatus) (bool, error) {
	query := `
		UPDATE invitations SET status = $1, modified_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.DB.ExecContext(ctx, query, inv.Status, nullTime(inv.ModifiedAt), inv.ID, from)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
