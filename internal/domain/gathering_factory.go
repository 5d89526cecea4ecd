package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CreateGatheringParams holds the input for GatheringFactory.Create. Exactly one of
// MaximumAttendees and InvitationsValidBeforeHours is read, depending on Type.
type CreateGatheringParams struct {
	Creator                     *Member
	Type                        GatheringType
	ScheduledAt                 time.Time
	Name                        string
	Location                    string
	MaximumAttendees            *int
	InvitationsValidBeforeHours *int
}

// MaxInvitationsValidBeforeHours is the largest lead time whose duration still fits in a
// time.Duration.
const MaxInvitationsValidBeforeHours = int(math.MaxInt64 / int64(time.Hour))

// GatheringFactory builds new gathering aggregates.
type GatheringFactory struct {
	clock Clock
	newID func() string
}

// NewGatheringFactory returns a factory that stamps gatherings with clock and random UUIDs.
func NewGatheringFactory(clock Clock) *GatheringFactory {
	return NewGatheringFactoryWithIDs(clock, uuid.NewString)
}

// NewGatheringFactoryWithIDs is NewGatheringFactory with a custom ID generator.
func NewGatheringFactoryWithIDs(clock Clock, newID func() string) *GatheringFactory {
	if clock == nil {
		clock = SystemClock{}
	}
	return &GatheringFactory{clock: clock, newID: newID}
}

// Create validates p and returns an unsaved gathering with zero attendees.
// It returns a *ValidationError and no gathering when the type-specific parameter is
// missing or invalid, or when the type is unknown.
func (f *GatheringFactory) Create(p CreateGatheringParams) (*Gathering, error) {
	if p.Creator == nil {
		return nil, NewValidationError("creator", "creator is required")
	}

	rule, err := buildRule(p)
	if err != nil {
		return nil, err
	}

	return &Gathering{
		ID:                f.newID(),
		CreatorID:         p.Creator.ID,
		Creator:           p.Creator,
		Rule:              rule,
		ScheduledAt:       p.ScheduledAt.UTC(),
		Name:              p.Name,
		Location:          p.Location,
		NumberOfAttendees: 0,
		Attendees:         []*Attendee{},
		CreatedAt:         f.clock.Now(),
	}, nil
}

func buildRule(p CreateGatheringParams) (AttendanceRule, error) {
	switch p.Type {
	case GatheringTypeFixedCapacity:
		if p.MaximumAttendees == nil {
			return nil, NewValidationError("maximum_attendees", MsgMissingTypeParameter)
		}
		if *p.MaximumAttendees <= 0 {
			return nil, NewValidationError("maximum_attendees", "must be greater than 0")
		}
		return FixedCapacityRule{MaximumAttendees: *p.MaximumAttendees}, nil
	case GatheringTypeExpiringInvitations:
		if p.InvitationsValidBeforeHours == nil {
			return nil, NewValidationError("invitations_valid_before_hours", MsgMissingTypeParameter)
		}
		if *p.InvitationsValidBeforeHours < 0 {
			return nil, NewValidationError("invitations_valid_before_hours", "must not be negative")
		}
		if *p.InvitationsValidBeforeHours > MaxInvitationsValidBeforeHours {
			return nil, NewValidationError("invitations_valid_before_hours", "is too large")
		}
		hours := time.Duration(*p.InvitationsValidBeforeHours) * time.Hour
		return ExpiringInvitationsRule{InvitationsExpireAt: p.ScheduledAt.UTC().Add(-hours)}, nil
	default:
		return nil, NewValidationError("type", MsgUnsupportedType)
	}
}
