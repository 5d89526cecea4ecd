package domain

import (
	"context"
	"strings"
	"time"
)

// Member is a person who can create gatherings and receive invitations.
// swagger:model Member
type Member struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns "First Last", falling back to the email address.
func (m *Member) DisplayName() string {
	name := strings.TrimSpace(m.FirstName + " " + m.LastName)
	if name == "" {
		return m.Email
	}
	return name
}

// MemberRepository defines read access to members.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*Member, error)
}
