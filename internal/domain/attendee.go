package domain

import (
	"context"
	"time"
)

// Attendee records that a member is admitted to a gathering.
// swagger:model Attendee
type Attendee struct {
	MemberID    string    `json:"member_id"`
	GatheringID string    `json:"gathering_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAttendee returns a new Attendee for the member and gathering.
func NewAttendee(memberID, gatheringID string, createdAt time.Time) *Attendee {
	return &Attendee{
		MemberID:    memberID,
		GatheringID: gatheringID,
		CreatedAt:   createdAt,
	}
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	Add(ctx context.Context, a *Attendee) error
	ListByGatheringID(ctx context.Context, gatheringID string) ([]*Attendee, error)
}
