package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gatherly/internal/domain"
)

type memberRepository struct {
	DB DBTX
}

func NewMemberRepository(db DBTX) domain.MemberRepository {
	return &memberRepository{
		DB: db,
	}
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `
		SELECT id, email, first_name, last_name, created_at
		FROM members
		WHERE id = $1
	`
	m := &domain.Member{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Email, &m.FirstName, &m.LastName, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
