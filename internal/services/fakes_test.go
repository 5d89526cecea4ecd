package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gatherly/internal/domain"
)

// fakeStore is an in-memory UnitOfWork. Reads see committed state; writes made inside
// WithinTx are buffered and applied at commit only if every compare-and-set still holds.
type fakeStore struct {
	mu          sync.Mutex
	members     map[string]domain.Member
	gatherings  map[string]domain.Gathering
	invitations map[string]domain.Invitation
	attendees   map[string][]domain.Attendee

	txCount    int
	writeCalls int
	commits    int
	conflicts  int

	commitErr    error        // if set, every commit fails with this error
	beforeCommit func() error // runs before the commit checks, outside the lock
	memberErr    error        // if set, Members().GetByID returns this error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:     make(map[string]domain.Member),
		gatherings:  make(map[string]domain.Gathering),
		invitations: make(map[string]domain.Invitation),
		attendees:   make(map[string][]domain.Attendee),
	}
}

func (s *fakeStore) addMember(m domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
}

func (s *fakeStore) addGathering(g *domain.Gathering) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *g
	cp.Creator, cp.Attendees = nil, nil
	s.gatherings[g.ID] = cp
}

func (s *fakeStore) addInvitation(inv domain.Invitation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invitations[inv.ID] = inv
}

func (s *fakeStore) invitation(id string) domain.Invitation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invitations[id]
}

func (s *fakeStore) gathering(id string) domain.Gathering {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gatherings[id]
}

func (s *fakeStore) attendeesOf(gatheringID string) []domain.Attendee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Attendee(nil), s.attendees[gatheringID]...)
}

func (s *fakeStore) persistenceCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txCount + s.writeCalls
}

func (s *fakeStore) Members() domain.MemberRepository         { return fakeMembers{&fakeTx{s: s, auto: true}} }
func (s *fakeStore) Gatherings() domain.GatheringRepository   { return fakeGatherings{&fakeTx{s: s, auto: true}} }
func (s *fakeStore) Invitations() domain.InvitationRepository { return fakeInvitations{&fakeTx{s: s, auto: true}} }
func (s *fakeStore) Attendees() domain.AttendeeRepository     { return fakeAttendees{&fakeTx{s: s, auto: true}} }

func (s *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Repositories) error) error {
	s.mu.Lock()
	s.txCount++
	s.mu.Unlock()

	tx := &fakeTx{s: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.beforeCommit != nil {
		if err := s.beforeCommit(); err != nil {
			return err
		}
	}
	return tx.commit()
}

// fakeOp is a buffered write: check runs against committed state, apply mutates it.
type fakeOp struct {
	check func() error
	apply func()
}

// fakeTx buffers writes for one transaction. With auto set, writes commit immediately.
type fakeTx struct {
	s    *fakeStore
	auto bool
	ops  []fakeOp
}

func (t *fakeTx) Members() domain.MemberRepository         { return fakeMembers{t} }
func (t *fakeTx) Gatherings() domain.GatheringRepository   { return fakeGatherings{t} }
func (t *fakeTx) Invitations() domain.InvitationRepository { return fakeInvitations{t} }
func (t *fakeTx) Attendees() domain.AttendeeRepository     { return fakeAttendees{t} }

func (t *fakeTx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.s.commitErr != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrPersistence, t.s.commitErr)
	}
	for _, op := range t.ops {
		if err := op.check(); err != nil {
			t.s.conflicts++
			return err
		}
	}
	for _, op := range t.ops {
		op.apply()
	}
	t.s.commits++
	return nil
}

func (t *fakeTx) write(op fakeOp) error {
	t.s.mu.Lock()
	t.s.writeCalls++
	t.s.mu.Unlock()
	t.ops = append(t.ops, op)
	if t.auto {
		defer func() { t.ops = nil }()
		return t.commit()
	}
	return nil
}

type fakeMembers struct{ t *fakeTx }

func (r fakeMembers) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memberErr != nil {
		return nil, s.memberErr
	}
	m, ok := s.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

type fakeInvitations struct{ t *fakeTx }

func (r fakeInvitations) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &inv, nil
}

func (r fakeInvitations) UpdateStatus(ctx context.Context, inv *domain.Invitation, from domain.InvitationStatus) (bool, error) {
	s := r.t.s
	cp := *inv
	s.mu.Lock()
	cur, ok := s.invitations[inv.ID]
	s.mu.Unlock()
	if !ok || cur.Status != from {
		return false, nil
	}
	return true, r.t.write(fakeOp{
		check: func() error {
			if s.invitations[cp.ID].Status != from {
				return fmt.Errorf("%w: invitation status changed", domain.ErrConcurrencyConflict)
			}
			return nil
		},
		apply: func() { s.invitations[cp.ID] = cp },
	})
}

type fakeAttendees struct{ t *fakeTx }

func (r fakeAttendees) Add(ctx context.Context, a *domain.Attendee) error {
	s := r.t.s
	cp := *a
	return r.t.write(fakeOp{
		check: func() error {
			for _, existing := range s.attendees[cp.GatheringID] {
				if existing.MemberID == cp.MemberID {
					return fmt.Errorf("%w: duplicate attendee", domain.ErrConcurrencyConflict)
				}
			}
			return nil
		},
		apply: func() { s.attendees[cp.GatheringID] = append(s.attendees[cp.GatheringID], cp) },
	})
}

func (r fakeAttendees) ListByGatheringID(ctx context.Context, gatheringID string) ([]*domain.Attendee, error) {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Attendee, 0, len(s.attendees[gatheringID]))
	for _, a := range s.attendees[gatheringID] {
		a := a
		out = append(out, &a)
	}
	return out, nil
}

type fakeGatherings struct{ t *fakeTx }

func (r fakeGatherings) Add(ctx context.Context, g *domain.Gathering) error {
	s := r.t.s
	cp := *g
	cp.Creator, cp.Attendees = nil, nil
	return r.t.write(fakeOp{
		check: func() error {
			if _, exists := s.gatherings[cp.ID]; exists {
				return errors.New("duplicate gathering id")
			}
			return nil
		},
		apply: func() { s.gatherings[cp.ID] = cp },
	})
}

func (r fakeGatherings) GetByID(ctx context.Context, id string) (*domain.Gathering, error) {
	return r.load(id, false)
}

func (r fakeGatherings) GetByIDWithCreator(ctx context.Context, id string) (*domain.Gathering, error) {
	return r.load(id, true)
}

func (r fakeGatherings) UpdateAttendance(ctx context.Context, g *domain.Gathering, expectedVersion int) (bool, error) {
	s := r.t.s
	s.mu.Lock()
	cur, ok := s.gatherings[g.ID]
	s.mu.Unlock()
	if !ok || cur.Version != expectedVersion {
		return false, nil
	}
	id, count := g.ID, g.NumberOfAttendees
	err := r.t.write(fakeOp{
		check: func() error {
			if s.gatherings[id].Version != expectedVersion {
				return fmt.Errorf("%w: gathering version changed", domain.ErrConcurrencyConflict)
			}
			return nil
		},
		apply: func() {
			stored := s.gatherings[id]
			stored.NumberOfAttendees = count
			stored.Version = expectedVersion + 1
			s.gatherings[id] = stored
		},
	})
	if err != nil {
		return false, err
	}
	g.Version = expectedVersion + 1
	return true, nil
}

func (r fakeGatherings) load(id string, withCreator bool) (*domain.Gathering, error) {
	s := r.t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.gatherings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	g := stored
	g.Attendees = make([]*domain.Attendee, 0, len(s.attendees[id]))
	for _, a := range s.attendees[id] {
		a := a
		g.Attendees = append(g.Attendees, &a)
	}
	if withCreator {
		m, ok := s.members[g.CreatorID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		g.Creator = &m
	}
	return &g, nil
}
