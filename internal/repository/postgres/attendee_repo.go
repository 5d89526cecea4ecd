package postgres

import (
	"context"

	"gatherly/internal/domain"
)

type attendeeRepository struct {
	DB DBTX
}

func NewAttendeeRepository(db DBTX) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

// Add inserts the attendee. A second row for the same member and gathering violates the
// primary key and surfaces as a unique violation.
func (r *attendeeRepository) Add(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (member_id, gathering_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, a.MemberID, a.GatheringID, a.CreatedAt)
	return err
}

func (r *attendeeRepository) ListByGatheringID(ctx context.Context, gatheringID string) ([]*domain.Attendee, error) {
	query := `
		SELECT member_id, gathering_id, created_at
		FROM attendees
		WHERE gathering_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, gatheringID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.MemberID, &a.GatheringID, &a.CreatedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}
