package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GatheringType selects the rule that decides when invitations stop being accepted.
type GatheringType string

const (
	GatheringTypeFixedCapacity       GatheringType = "fixed_capacity"
	GatheringTypeExpiringInvitations GatheringType = "expiring_invitations"
)

// AttendanceRule is the type-specific part of a gathering. The only implementations are
// FixedCapacityRule and ExpiringInvitationsRule, so a gathering always carries exactly one
// of a maximum attendee count or an invitation deadline.
type AttendanceRule interface {
	Type() GatheringType
	attendanceRule()
}

// FixedCapacityRule closes a gathering once MaximumAttendees members attend.
type FixedCapacityRule struct {
	MaximumAttendees int
}

func (FixedCapacityRule) Type() GatheringType { return GatheringTypeFixedCapacity }
func (FixedCapacityRule) attendanceRule()     {}

// ExpiringInvitationsRule stops accepting invitations at InvitationsExpireAt.
type ExpiringInvitationsRule struct {
	InvitationsExpireAt time.Time
}

func (ExpiringInvitationsRule) Type() GatheringType { return GatheringTypeExpiringInvitations }
func (ExpiringInvitationsRule) attendanceRule()     {}

// RuleFromColumns rebuilds a rule from its stored columns and rejects rows that break the
// one-rule-per-gathering invariant.
func RuleFromColumns(t GatheringType, maximumAttendees *int, invitationsExpireAt *time.Time) (AttendanceRule, error) {
	switch t {
	case GatheringTypeFixedCapacity:
		if maximumAttendees == nil || invitationsExpireAt != nil {
			return nil, fmt.Errorf("gathering type %q: inconsistent rule columns", t)
		}
		return FixedCapacityRule{MaximumAttendees: *maximumAttendees}, nil
	case GatheringTypeExpiringInvitations:
		if invitationsExpireAt == nil || maximumAttendees != nil {
			return nil, fmt.Errorf("gathering type %q: inconsistent rule columns", t)
		}
		return ExpiringInvitationsRule{InvitationsExpireAt: invitationsExpireAt.UTC()}, nil
	default:
		return nil, fmt.Errorf("gathering type %q: unsupported", t)
	}
}

// Gathering is a scheduled event and the aggregate root for its attendees.
// swagger:model Gathering
type Gathering struct {
	ID                string
	CreatorID         string
	Creator           *Member
	Rule              AttendanceRule
	ScheduledAt       time.Time
	Name              string
	Location          string
	NumberOfAttendees int
	Attendees         []*Attendee
	// Version is bumped on every attendance update and guards concurrent writers.
	Version   int
	CreatedAt time.Time
}

// Type returns the gathering type derived from its rule.
func (g *Gathering) Type() GatheringType {
	if g.Rule == nil {
		return ""
	}
	return g.Rule.Type()
}

// MaximumAttendees returns the capacity of a fixed capacity gathering.
func (g *Gathering) MaximumAttendees() (int, bool) {
	r, ok := g.Rule.(FixedCapacityRule)
	if !ok {
		return 0, false
	}
	return r.MaximumAttendees, true
}

// InvitationsExpireAt returns the invitation deadline of an expiring invitations gathering.
func (g *Gathering) InvitationsExpireAt() (time.Time, bool) {
	r, ok := g.Rule.(ExpiringInvitationsRule)
	if !ok {
		return time.Time{}, false
	}
	return r.InvitationsExpireAt, true
}

// IsFull reports whether a fixed capacity gathering has no seat left.
func (g *Gathering) IsFull() bool {
	max, ok := g.MaximumAttendees()
	return ok && g.NumberOfAttendees >= max
}

// InvitationsExpired reports whether the invitation deadline has been reached at now.
func (g *Gathering) InvitationsExpired(now time.Time) bool {
	expireAt, ok := g.InvitationsExpireAt()
	return ok && !now.Before(expireAt)
}

// HasAttendee reports whether memberID is already admitted.
func (g *Gathering) HasAttendee(memberID string) bool {
	for _, a := range g.Attendees {
		if a.MemberID == memberID {
			return true
		}
	}
	return false
}

func (g *Gathering) admit(a *Attendee) {
	g.Attendees = append(g.Attendees, a)
	g.NumberOfAttendees++
}

type gatheringJSON struct {
	ID                  string        `json:"id"`
	CreatorID           string        `json:"creator_id"`
	Creator             *Member       `json:"creator,omitempty"`
	Type                GatheringType `json:"type"`
	ScheduledAt         time.Time     `json:"scheduled_at"`
	Name                string        `json:"name"`
	Location            string        `json:"location"`
	MaximumAttendees    *int          `json:"maximum_attendees,omitempty"`
	InvitationsExpireAt *time.Time    `json:"invitations_expire_at,omitempty"`
	NumberOfAttendees   int           `json:"number_of_attendees"`
	Attendees           []*Attendee   `json:"attendees"`
	CreatedAt           time.Time     `json:"created_at"`
}

// MarshalJSON renders the rule as exactly one of maximum_attendees or invitations_expire_at.
func (g Gathering) MarshalJSON() ([]byte, error) {
	out := gatheringJSON{
		ID:                g.ID,
		CreatorID:         g.CreatorID,
		Creator:           g.Creator,
		Type:              g.Type(),
		ScheduledAt:       g.ScheduledAt,
		Name:              g.Name,
		Location:          g.Location,
		NumberOfAttendees: g.NumberOfAttendees,
		Attendees:         g.Attendees,
		CreatedAt:         g.CreatedAt,
	}
	if max, ok := g.MaximumAttendees(); ok {
		out.MaximumAttendees = &max
	}
	if expireAt, ok := g.InvitationsExpireAt(); ok {
		out.InvitationsExpireAt = &expireAt
	}
	if out.Attendees == nil {
		out.Attendees = []*Attendee{}
	}
	return json.Marshal(out)
}

// GatheringRepository defines storage operations for gatherings.
type GatheringRepository interface {
	Add(ctx context.Context, g *Gathering) error
	GetByID(ctx context.Context, id string) (*Gathering, error)
	// GetByIDWithCreator also loads the creator and the attendee list.
	GetByIDWithCreator(ctx context.Context, id string) (*Gathering, error)
	// UpdateAttendance writes NumberOfAttendees and bumps Version only if the stored version
	// still equals expectedVersion. It returns false when another writer got there first.
	UpdateAttendance(ctx context.Context, g *Gathering, expectedVersion int) (bool, error)
}

// CreateGatheringCommand is the input of GatheringService.CreateGathering.
type CreateGatheringCommand struct {
	MemberID                    string
	Type                        GatheringType
	ScheduledAt                 time.Time
	Name                        string
	Location                    string
	MaximumAttendees            *int
	InvitationsValidBeforeHours *int
}

// GatheringService defines gathering creation and lookup.
type GatheringService interface {
	// CreateGathering returns (nil, nil) when the creating member does not exist.
	CreateGathering(ctx context.Context, cmd CreateGatheringCommand) (*Gathering, error)
	GetGathering(ctx context.Context, id string) (*Gathering, error)
}
