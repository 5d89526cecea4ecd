package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gatherly/internal/domain"
)

const gatheringColumns = `g.id, g.creator_id, g.type, g.scheduled_at, g.name, g.location,
		g.maximum_attendees, g.invitations_expire_at, g.number_of_attendees, g.version, g.created_at`

type gatheringRepository struct {
	DB DBTX
}

func NewGatheringRepository(db DBTX) domain.GatheringRepository {
	return &gatheringRepository{
		DB: db,
	}
}

func (r *gatheringRepository) Add(ctx context.Context, g *domain.Gathering) error {
	query := `
		INSERT INTO gatherings (id, creator_id, type, scheduled_at, name, location,
			maximum_attendees, invitations_expire_at, number_of_attendees, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var max *int
	if v, ok := g.MaximumAttendees(); ok {
		max = &v
	}
	var expireAt sql.NullTime
	if v, ok := g.InvitationsExpireAt(); ok {
		expireAt = sql.NullTime{Time: v, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		g.ID, g.CreatorID, string(g.Type()), g.ScheduledAt, g.Name, g.Location,
		nullInt(max), expireAt, g.NumberOfAttendees, g.Version, g.CreatedAt,
	)
	return err
}

func (r *gatheringRepository) GetByID(ctx context.Context, id string) (*domain.Gathering, error) {
	query := `
		SELECT ` + gatheringColumns + `
		FROM gatherings g
		WHERE g.id = $1
	`
	g, err := scanGathering(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *gatheringRepository) GetByIDWithCreator(ctx context.Context, id string) (*domain.Gathering, error) {
	query := `
		SELECT ` + gatheringColumns + `,
			m.id, m.email, m.first_name, m.last_name, m.created_at
		FROM gatherings g
		JOIN members m ON m.id = g.creator_id
		WHERE g.id = $1
	`
	creator := &domain.Member{}
	g, err := scanGathering(r.DB.QueryRowContext(ctx, query, id),
		&creator.ID, &creator.Email, &creator.FirstName, &creator.LastName, &creator.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	g.Creator = creator

	attendees, err := NewAttendeeRepository(r.DB).ListByGatheringID(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	g.Attendees = attendees
	return g, nil
}

func (r *gatheringRepository) UpdateAttendance(ctx context.Context, g *domain.Gathering, expectedVersion int) (bool, error) {
	query := `
		UPDATE gatherings SET number_of_attendees = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`
	result, err := r.DB.ExecContext(ctx, query, g.NumberOfAttendees, g.ID, expectedVersion)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows != 1 {
		return false, nil
	}
	g.Version = expectedVersion + 1
	return true, nil
}

func scanGathering(row rowScanner, extra ...any) (*domain.Gathering, error) {
	g := &domain.Gathering{}
	var typ string
	var maxNull sql.NullInt64
	var expireNull sql.NullTime
	dest := []any{
		&g.ID, &g.CreatorID, &typ, &g.ScheduledAt, &g.Name, &g.Location,
		&maxNull, &expireNull, &g.NumberOfAttendees, &g.Version, &g.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	var max *int
	if maxNull.Valid {
		v := int(maxNull.Int64)
		max = &v
	}
	var expireAt *time.Time
	if expireNull.Valid {
		expireAt = &expireNull.Time
	}
	rule, err := domain.RuleFromColumns(domain.GatheringType(typ), max, expireAt)
	if err != nil {
		return nil, fmt.Errorf("gathering %s: %w", g.ID, err)
	}
	g.Rule = rule
	g.ScheduledAt = g.ScheduledAt.UTC()
	g.Attendees = []*domain.Attendee{}
	return g, nil
}
