package usecase

import (
	"context"
	"sync"
	"time"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
	"lashup-client/internal/infrastructure/notify"
	"lashup-client/internal/localstore"
	"lashup-client/pkg/logger"
	"lashup-client/pkg/utils"
)

// Session owns the auth state: user record, bearer token, and the Role enum
// decoded once at hydration. Any 401 from the API layer invalidates it.
type Session struct {
	mu     sync.Mutex
	api    *api.Client
	store  *localstore.Store
	notify *notify.Hub

	user          *domain.User
	role          domain.Role
	authenticated bool
}

func NewSession(client *api.Client, store *localstore.Store, hub *notify.Hub) *Session {
	s := &Session{
		api:    client,
		store:  store,
		notify: hub,
	}
	client.OnUnauthorized(s.expire)
	return s
}

// Hydrate restores the session from durable storage at startup. A missing
// token, missing user record, or expired token leaves the session logged out.
func (s *Session) Hydrate() {
	var token string
	var user domain.User
	if !s.store.Get(localstore.KeyToken, &token) || token == "" {
		return
	}
	if !s.store.Get(localstore.KeyUser, &user) {
		return
	}

	claims, err := utils.DecodeToken(token)
	if err != nil {
		logger.Warn().Err(err).Msg("Stored token unreadable, discarding session")
		s.clearStored()
		return
	}
	if claims.Expired(time.Now()) {
		logger.Info().Msg("Stored token expired, discarding session")
		s.clearStored()
		return
	}

	// Role is decoded exactly once: token claim first, stored record fallback.
	roleStr := claims.Role
	if roleStr == "" {
		roleStr = user.Role
	}

	s.mu.Lock()
	s.user = &user
	s.role = domain.ParseRole(roleStr)
	s.authenticated = true
	s.mu.Unlock()

	s.api.SetToken(token)
	logger.Info().Str("user_id", user.ID).Str("role", s.role.String()).Msg("Session restored")
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Login failed"))
		return err
	}
	s.establish(resp)
	s.notify.Success("Welcome back!")
	return nil
}

// Register creates the account and immediately logs in with the same
// credentials.
func (s *Session) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := s.api.Register(ctx, req); err != nil {
		s.notify.Error(domain.ServerMessage(err, "Registration failed"))
		return err
	}
	return s.Login(ctx, req.Email, req.Password)
}

func (s *Session) Logout() {
	s.reset()
	s.notify.Info("Logged out")
}

// DeleteAccount removes the account server-side, then clears the session.
func (s *Session) DeleteAccount(ctx context.Context) error {
	if err := s.api.DeleteAccount(ctx); err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to delete account"))
		return err
	}
	s.reset()
	s.notify.Success("Account deleted")
	return nil
}

func (s *Session) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) error {
	updated, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to update profile"))
		return err
	}

	s.mu.Lock()
	s.user = updated
	s.mu.Unlock()
	s.store.Set(localstore.KeyUser, updated)

	s.notify.Success("Profile updated")
	return nil
}

func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	err := s.api.ChangePassword(ctx, api.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to change password"))
		return err
	}
	s.notify.Success("Password changed")
	return nil
}

// User returns a copy of the authenticated user, or nil.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Role() domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated && s.role.IsAdmin()
}

func (s *Session) establish(resp *api.LoginResponse) {
	roleStr := resp.User.Role
	if claims, err := utils.DecodeToken(resp.Token); err == nil && claims.Role != "" {
		roleStr = claims.Role
	}

	s.mu.Lock()
	user := resp.User
	s.user = &user
	s.role = domain.ParseRole(roleStr)
	s.authenticated = true
	s.mu.Unlock()

	s.api.SetToken(resp.Token)
	s.store.Set(localstore.KeyToken, resp.Token)
	s.store.Set(localstore.KeyUser, resp.User)
}

// expire handles a 401 from any request: clear everything and tell the user.
func (s *Session) expire() {
	if !s.IsAuthenticated() {
		return
	}
	s.reset()
	s.notify.Error("Your session has expired, please sign in again")
}

func (s *Session) reset() {
	s.mu.Lock()
	s.user = nil
	s.role = domain.RoleUser
	s.authenticated = false
	s.mu.Unlock()

	s.api.ClearToken()
	s.clearStored()
}

func (s *Session) clearStored() {
	s.store.Delete(localstore.KeyToken)
	s.store.Delete(localstore.KeyUser)
}
