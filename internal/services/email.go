package services

import (
	"context"
	"fmt"
	"log/slog"

	"gatherly/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendInvitationAccepted tells the gathering creator that an invitation was accepted,
// using the "invitation_accepted" template.
func (s *emailService) SendInvitationAccepted(ctx context.Context, gathering *domain.Gathering) error {
	if gathering == nil || gathering.Creator == nil {
		return fmt.Errorf("gathering creator is not loaded")
	}
	data := &domain.InvitationAcceptedEmailData{
		Email:             gathering.Creator.Email,
		CreatorName:       gathering.Creator.DisplayName(),
		GatheringName:     gathering.Name,
		Location:          gathering.Location,
		ScheduledAt:       gathering.ScheduledAt,
		NumberOfAttendees: gathering.NumberOfAttendees,
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invitation_accepted", data)
	if err != nil {
		return fmt.Errorf("failed to render invitation_accepted template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation accepted email: %w", err)
	}
	s.logger.Info("invitation accepted email sent", "to", data.Email, "gathering_id", gathering.ID)
	return nil
}
