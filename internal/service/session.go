package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/config"
)

// AuthAPI is the slice of the backend client the session needs.
type AuthAPI interface {
	TelegramAuth(ctx context.Context, req api.AuthRequest) (*api.User, error)
}

// Session holds the authenticated marketplace identity. Browsing works
// without one; buying and selling do not.
type Session struct {
	API AuthAPI
	Log zerolog.Logger

	user *api.User
}

// Authenticate exchanges the configured chat identity for a marketplace
// user. A zero telegram id means the client runs unauthenticated.
func (s *Session) Authenticate(ctx context.Context, id config.IdentityConfig) error {
	if id.TelegramID == 0 {
		s.Log.Warn().Msg("no identity configured, running unauthenticated")
		return nil
	}
	user, err := s.API.TelegramAuth(ctx, api.AuthRequest{
		TelegramID: id.TelegramID,
		Username:   id.Username,
		FirstName:  id.FirstName,
	})
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	s.user = user
	s.Log.Info().Int("user_id", user.ID).Str("username", user.Username).Msg("authenticated")
	return nil
}

// User returns the signed-in user, if any.
func (s *Session) User() (*api.User, bool) {
	if s.user == nil {
		return nil, false
	}
	return s.user, true
}

// UserID returns the signed-in user's id as the backend expects it in
// buyer_id/seller_id fields.
func (s *Session) UserID() (string, bool) {
	if s.user == nil {
		return "", false
	}
	return strconv.Itoa(s.user.ID), true
}

// DepositAddress derives the mock buyer wallet address: the telegram id
// zero-padded to 40 hex characters behind 0x, matching the backend's
// escrow simulation.
func (s *Session) DepositAddress() (string, bool) {
	if s.user == nil {
		return "", false
	}
	id := strconv.FormatInt(s.user.TelegramID, 10)
	for len(id) < 40 {
		id = "0" + id
	}
	return "0x" + id, true
}
