package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gatherly/internal/domain"
)

type gatheringService struct {
	uow            domain.UnitOfWork
	factory        *domain.GatheringFactory
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewGatheringService(uow domain.UnitOfWork,
	factory *domain.GatheringFactory,
	logger *slog.Logger,
	timeout time.Duration,
) domain.GatheringService {
	if logger == nil {
		logger = slog.Default()
	}
	return &gatheringService{
		uow:            uow,
		factory:        factory,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateGathering returns a nil gathering and a nil error when the creator does not exist.
func (s *gatheringService) CreateGathering(ctx context.Context, cmd domain.CreateGatheringCommand) (*domain.Gathering, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	creator, err := s.uow.Members().GetByID(ctx, cmd.MemberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("create gathering ignored, unknown member", "member_id", cmd.MemberID)
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}

	g, err := s.factory.Create(domain.CreateGatheringParams{
		Creator:                     creator,
		Type:                        cmd.Type,
		ScheduledAt:                 cmd.ScheduledAt,
		Name:                        cmd.Name,
		Location:                    cmd.Location,
		MaximumAttendees:            cmd.MaximumAttendees,
		InvitationsValidBeforeHours: cmd.InvitationsValidBeforeHours,
	})
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx domain.Repositories) error {
		return tx.Gatherings().Add(ctx, g)
	})
	if err != nil {
		return nil, fmt.Errorf("add gathering: %w", err)
	}
	s.logger.Info("gathering created", "gathering_id", g.ID, "type", g.Type(), "member_id", creator.ID)
	return g, nil
}

func (s *gatheringService) GetGathering(ctx context.Context, id string) (*domain.Gathering, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.uow.Gatherings().GetByIDWithCreator(ctx, id)
}

func (s *gatheringService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}
