package domain

// OutcomeKind is the decision taken for an accept request.
type OutcomeKind string

const (
	// OutcomeIgnored means nothing changed: the invitation was missing, not pending, or
	// did not belong to the gathering.
	OutcomeIgnored  OutcomeKind = "ignored"
	OutcomeAccepted OutcomeKind = "accepted"
	OutcomeExpired  OutcomeKind = "expired"
)

// AcceptanceOutcome is the result of resolving an accept request.
// swagger:model AcceptanceOutcome
type AcceptanceOutcome struct {
	Kind OutcomeKind `json:"outcome"`
	// Attendee is set when a new attendee was admitted and must be persisted.
	Attendee *Attendee `json:"attendee,omitempty"`
	// Notify tells the caller to send the invitation accepted email after commit.
	Notify bool `json:"-"`
}

// Ignored returns the no-op outcome.
func Ignored() *AcceptanceOutcome {
	return &AcceptanceOutcome{Kind: OutcomeIgnored}
}

// InvitationAcceptanceResolver decides between acceptance and expiration of a pending
// invitation and applies the decision to the invitation and gathering in memory.
// Callers must run Resolve and the following persistence as one atomic unit per gathering.
type InvitationAcceptanceResolver struct {
	clock Clock
}

// NewInvitationAcceptanceResolver returns a resolver reading time from clock.
func NewInvitationAcceptanceResolver(clock Clock) *InvitationAcceptanceResolver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &InvitationAcceptanceResolver{clock: clock}
}

// Resolve mutates inv and g according to the gathering rule:
//   - full fixed capacity gathering or passed invitation deadline: inv becomes Expired;
//   - otherwise inv becomes Accepted, a new Attendee is appended to g and
//     NumberOfAttendees grows by one.
//
// A member who already attends g gets the invitation Accepted without a second attendee.
// Violated preconditions produce OutcomeIgnored and leave both arguments untouched.
func (r *InvitationAcceptanceResolver) Resolve(inv *Invitation, g *Gathering) *AcceptanceOutcome {
	if inv == nil || g == nil || !inv.IsPending() || inv.GatheringID != g.ID {
		return Ignored()
	}

	now := r.clock.Now()

	if g.IsFull() || g.InvitationsExpired(now) {
		if err := inv.Expire(now); err != nil {
			return Ignored()
		}
		return &AcceptanceOutcome{Kind: OutcomeExpired}
	}

	if err := inv.Accept(now); err != nil {
		return Ignored()
	}
	if g.HasAttendee(inv.MemberID) {
		return &AcceptanceOutcome{Kind: OutcomeAccepted}
	}

	attendee := NewAttendee(inv.MemberID, inv.GatheringID, now)
	g.admit(attendee)
	return &AcceptanceOutcome{
		Kind:     OutcomeAccepted,
		Attendee: attendee,
		Notify:   true,
	}
}
