package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gatherly/internal/domain"
)

// AcceptanceConfig bounds the optimistic retry loop of AcceptInvitation.
type AcceptanceConfig struct {
	MaxAttempts  int
	RetryBackoff time.Duration
	Timeout      time.Duration
}

const defaultMaxAttempts = 3

type invitationService struct {
	uow          domain.UnitOfWork
	resolver     *domain.InvitationAcceptanceResolver
	locker       domain.GatheringLocker
	emailService domain.EmailService
	logger       *slog.Logger
	cfg          AcceptanceConfig
}

func NewInvitationService(uow domain.UnitOfWork,
	resolver *domain.InvitationAcceptanceResolver,
	locker domain.GatheringLocker,
	emailService domain.EmailService,
	logger *slog.Logger,
	cfg AcceptanceConfig,
) domain.InvitationService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if locker == nil {
		locker = nopLocker{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &invitationService{
		uow:          uow,
		resolver:     resolver,
		locker:       locker,
		emailService: emailService,
		logger:       logger,
		cfg:          cfg,
	}
}

func (s *invitationService) AcceptInvitation(ctx context.Context, cmd domain.AcceptInvitationCommand) (*domain.AcceptanceOutcome, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	inv, err := s.uow.Invitations().GetByID(ctx, cmd.InvitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Ignored(), nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if !inv.IsPending() {
		return domain.Ignored(), nil
	}

	unlock, err := s.locker.Lock(ctx, inv.GatheringID)
	if err != nil {
		return nil, fmt.Errorf("lock gathering %s: %w", inv.GatheringID, err)
	}
	defer unlock()

	var (
		outcome   *domain.AcceptanceOutcome
		gathering *domain.Gathering
	)
	for attempt := 1; ; attempt++ {
		outcome, gathering, err = s.resolve(ctx, cmd.InvitationID)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return nil, err
		}
		if attempt >= s.cfg.MaxAttempts {
			s.logger.Warn("accept invitation gave up", "invitation_id", cmd.InvitationID, "attempts", attempt, "err", err)
			return nil, err
		}
		s.logger.Warn("accept invitation conflict, retrying", "invitation_id", cmd.InvitationID, "attempt", attempt)
		if err := sleep(ctx, time.Duration(attempt)*s.cfg.RetryBackoff); err != nil {
			return nil, err
		}
	}
	unlock()

	s.logger.Info("invitation resolved", "invitation_id", cmd.InvitationID, "outcome", outcome.Kind)
	if outcome.Notify && s.emailService != nil {
		if err := s.emailService.SendInvitationAccepted(ctx, gathering); err != nil {
			s.logger.Warn("invitation accepted email failed", "gathering_id", gathering.ID, "err", err)
		}
	}
	return outcome, nil
}

// resolve runs one read-decide-write attempt in a single unit of work. Lost races are
// returned as domain.ErrConcurrencyConflict.
func (s *invitationService) resolve(ctx context.Context, invitationID string) (*domain.AcceptanceOutcome, *domain.Gathering, error) {
	var (
		outcome   = domain.Ignored()
		gathering *domain.Gathering
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx domain.Repositories) error {
		inv, err := tx.Invitations().GetByID(ctx, invitationID)
		if err != nil {
			return ignoreNotFound(err, "get invitation")
		}
		if !inv.IsPending() {
			return nil
		}
		if _, err := tx.Members().GetByID(ctx, inv.MemberID); err != nil {
			return ignoreNotFound(err, "get member")
		}
		g, err := tx.Gatherings().GetByIDWithCreator(ctx, inv.GatheringID)
		if err != nil {
			return ignoreNotFound(err, "get gathering")
		}

		expectedVersion := g.Version
		out := s.resolver.Resolve(inv, g)
		if out.Kind == domain.OutcomeIgnored {
			return nil
		}

		ok, err := tx.Invitations().UpdateStatus(ctx, inv, domain.InvitationStatusPending)
		if err != nil {
			return fmt.Errorf("update invitation: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: invitation %s already resolved", domain.ErrConcurrencyConflict, inv.ID)
		}

		if out.Attendee != nil {
			if err := tx.Attendees().Add(ctx, out.Attendee); err != nil {
				return fmt.Errorf("add attendee: %w", err)
			}
			ok, err := tx.Gatherings().UpdateAttendance(ctx, g, expectedVersion)
			if err != nil {
				return fmt.Errorf("update attendance: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: gathering %s version %d is stale", domain.ErrConcurrencyConflict, g.ID, expectedVersion)
			}
		}

		outcome, gathering = out, g
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outcome, gathering, nil
}

func ignoreNotFound(err error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type nopLocker struct{}

func (nopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }
