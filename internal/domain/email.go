package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationAcceptedEmailData holds data for the invitation accepted email sent to the
// gathering creator.
type InvitationAcceptedEmailData struct {
	Email             string
	CreatorName       string
	GatheringName     string
	Location          string
	ScheduledAt       time.Time
	NumberOfAttendees int
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendInvitationAccepted(ctx context.Context, gathering *Gathering) error
}
