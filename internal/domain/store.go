package domain

import "context"

// Repositories groups the repositories bound to one database handle or transaction.
type Repositories interface {
	Members() MemberRepository
	Gatherings() GatheringRepository
	Invitations() InvitationRepository
	Attendees() AttendeeRepository
}

// UnitOfWork runs a group of repository calls atomically.
type UnitOfWork interface {
	Repositories
	// WithinTx runs fn in a transaction. All writes made through tx are committed together
	// when fn returns nil, and none are applied when fn returns an error, ctx is cancelled,
	// or the commit fails. A failed commit is reported as ErrPersistence.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
}
