package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatherly/internal/adapters/auth"
	"gatherly/internal/delivery/http/helpers"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, secret, subject string, expiry time.Duration) string {
	t.Helper()
	token, err := auth.NewJWTIssuer(secret).Issue(subject, "host@example.com", expiry)
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	member := uuid.NewString()

	tests := []struct {
		name       string
		header     func(t *testing.T) string
		wantStatus int
		wantMember string
	}{
		{
			name:       "member token",
			header:     func(t *testing.T) string { return "Bearer " + issueToken(t, testSecret, member, time.Hour) },
			wantStatus: http.StatusOK,
			wantMember: member,
		},
		{
			name:       "scheme is case insensitive",
			header:     func(t *testing.T) string { return "bearer " + issueToken(t, testSecret, member, time.Hour) },
			wantStatus: http.StatusOK,
			wantMember: member,
		},
		{
			name:       "uppercase subject is normalised",
			header:     func(t *testing.T) string { return "Bearer " + issueToken(t, testSecret, strings.ToUpper(member), time.Hour) },
			wantStatus: http.StatusOK,
			wantMember: member,
		},
		{
			name:       "subject is not a member id",
			header:     func(t *testing.T) string { return "Bearer " + issueToken(t, testSecret, "admin", time.Hour) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     func(t *testing.T) string { return "Bearer " + issueToken(t, testSecret, member, -time.Minute) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "signed with another secret",
			header:     func(t *testing.T) string { return "Bearer " + issueToken(t, "other-secret", member, time.Hour) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header",
			header:     func(*testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "basic credentials",
			header:     func(*testing.T) string { return "Basic YWxhZGRpbjpvcGVuc2VzYW1l" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer without token",
			header:     func(*testing.T) string { return "Bearer   " },
			wantStatus: http.StatusUnauthorized,
		},
	}

	requireAuth := RequireAuth(auth.NewJWTVerifier(testSecret), logger)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMember string
			handler := requireAuth(func(w http.ResponseWriter, r *http.Request) {
				gotMember, _ = MemberIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/gatherings", nil)
			if hdr := tt.header(t); hdr != "" {
				req.Header.Set("Authorization", hdr)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMember, gotMember)
			if tt.wantStatus == http.StatusUnauthorized {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
			}
		})
	}
}

func TestMemberIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := MemberIDFromContext(req.Context())
	assert.False(t, ok)

	_, ok = MemberIDFromContext(SetMemberID(req.Context(), ""))
	assert.False(t, ok)

	id, ok := MemberIDFromContext(SetMemberID(req.Context(), "m-1"))
	assert.True(t, ok)
	assert.Equal(t, "m-1", id)
}
