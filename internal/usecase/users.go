package usecase

import (
	"context"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
	"lashup-client/internal/infrastructure/notify"
)

const fetchUsersFallback = "Failed to fetch users"

// UserStore is the admin back-office user list.
type UserStore struct {
	api     *api.Client
	session *Session
	notify  *notify.Hub
	policy  FetchPolicy
	col     collection[domain.User]
}

func NewUserStore(client *api.Client, session *Session, hub *notify.Hub, policy FetchPolicy) *UserStore {
	return &UserStore{
		api:     client,
		session: session,
		notify:  hub,
		policy:  policy,
		col:     newCollection(func(u domain.User) string { return u.ID }),
	}
}

func (s *UserStore) Fetch(ctx context.Context) error {
	if err := requireAdmin(s.session); err != nil {
		return err
	}

	s.col.beginLoad()
	users, err := fetchWithRetry(ctx, s.policy, s.api.ListUsers)
	if err != nil {
		if ctx.Err() != nil {
			s.col.cancelLoad()
			return err
		}
		msg := domain.ServerMessage(err, fetchUsersFallback)
		s.col.finishErr(msg)
		s.notify.Error(msg)
		return err
	}
	s.col.finishOK(users)
	return nil
}

func (s *UserStore) Users() []domain.User {
	return s.col.snapshot()
}

func (s *UserStore) State() (Phase, string) {
	return s.col.state()
}

func (s *UserStore) ChangeRole(ctx context.Context, userID, role string) error {
	if err := requireAdmin(s.session); err != nil {
		return err
	}
	updated, err := s.api.UpdateUserRole(ctx, userID, role)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to change role"))
		return err
	}
	s.col.replace(*updated)
	s.notify.Success("Role updated")
	return nil
}

func (s *UserStore) Delete(ctx context.Context, userID string) error {
	if err := requireAdmin(s.session); err != nil {
		return err
	}
	if err := s.api.DeleteUser(ctx, userID); err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to delete user"))
		return err
	}
	s.col.remove(userID)
	s.notify.Success("User deleted")
	return nil
}
