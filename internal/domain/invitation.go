package domain

import (
	"context"
	"fmt"
	"time"
)

// InvitationStatus is the lifecycle state of an invitation. Only Pending is not terminal.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// IsTerminal reports whether the status can no longer change.
func (s InvitationStatus) IsTerminal() bool {
	return s != InvitationStatusPending
}

// Invitation asks a member to attend a gathering.
// swagger:model Invitation
type Invitation struct {
	ID          string           `json:"id"`
	MemberID    string           `json:"member_id"`
	GatheringID string           `json:"gathering_id"`
	Status      InvitationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ModifiedAt  *time.Time       `json:"modified_at,omitempty"`
}

// IsPending reports whether the invitation is still awaiting a decision.
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// Accept moves a pending invitation to Accepted.
func (i *Invitation) Accept(now time.Time) error {
	return i.transition(InvitationStatusAccepted, now)
}

// Expire moves a pending invitation to Expired.
func (i *Invitation) Expire(now time.Time) error {
	return i.transition(InvitationStatusExpired, now)
}

// Reject moves a pending invitation to Rejected.
func (i *Invitation) Reject(now time.Time) error {
	return i.transition(InvitationStatusRejected, now)
}

func (i *Invitation) transition(to InvitationStatus, now time.Time) error {
	if i.Status.IsTerminal() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, to)
	}
	i.Status = to
	i.ModifiedAt = &now
	return nil
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	GetByID(ctx context.Context, id string) (*Invitation, error)
	// UpdateStatus writes Status and ModifiedAt only if the stored status still equals from.
	// It returns false when the invitation was resolved concurrently.
	UpdateStatus(ctx context.Context, inv *Invitation, from InvitationStatus) (bool, error)
}

// AcceptInvitationCommand is the input of InvitationService.AcceptInvitation.
type AcceptInvitationCommand struct {
	InvitationID string
}

// InvitationService defines invitation-facing operations.
type InvitationService interface {
	// AcceptInvitation resolves a pending invitation. Missing or already resolved
	// invitations yield an OutcomeIgnored result and a nil error.
	AcceptInvitation(ctx context.Context, cmd AcceptInvitationCommand) (*AcceptanceOutcome, error)
}
