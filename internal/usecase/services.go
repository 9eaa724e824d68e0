package usecase

import (
	"context"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
	"lashup-client/internal/infrastructure/notify"
)

const fetchServicesFallback = "Failed to fetch services"

// ServiceStore holds the bookable treatments. Same contract as products:
// storefront callers read Active(), admins mutate.
type ServiceStore struct {
	api     *api.Client
	session *Session
	notify  *notify.Hub
	policy  FetchPolicy
	col     collection[domain.Service]
}

func NewServiceStore(client *api.Client, session *Session, hub *notify.Hub, policy FetchPolicy) *ServiceStore {
	return &ServiceStore{
		api:     client,
		session: session,
		notify:  hub,
		policy:  policy,
		col:     newCollection(func(s domain.Service) string { return s.ID }),
	}
}

func (s *ServiceStore) Fetch(ctx context.Context) error {
	s.col.beginLoad()
	services, err := fetchWithRetry(ctx, s.policy, s.api.ListServices)
	if err != nil {
		if ctx.Err() != nil {
			s.col.cancelLoad()
			return err
		}
		msg := domain.ServerMessage(err, fetchServicesFallback)
		s.col.finishErr(msg)
		s.notify.Error(msg)
		return err
	}
	s.col.finishOK(services)
	return nil
}

func (s *ServiceStore) Services() []domain.Service {
	return s.col.snapshot()
}

// Active filters to what the booking page offers.
func (s *ServiceStore) Active() []domain.Service {
	all := s.col.snapshot()
	out := make([]domain.Service, 0, len(all))
	for _, svc := range all {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	return out
}

func (s *ServiceStore) State() (Phase, string) {
	return s.col.state()
}

func (s *ServiceStore) Create(ctx context.Context, in api.ServiceInput) (*domain.Service, error) {
	if err := requireAdmin(s.session); err != nil {
		return nil, err
	}
	created, err := s.api.CreateService(ctx, in)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to create service"))
		return nil, err
	}
	s.col.prepend(*created)
	s.notify.Success("Service created")
	return created, nil
}

func (s *ServiceStore) Update(ctx context.Context, id string, in api.ServiceInput) (*domain.Service, error) {
	if err := requireAdmin(s.session); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateService(ctx, id, in)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to update service"))
		return nil, err
	}
	s.col.replace(*updated)
	s.notify.Success("Service updated")
	return updated, nil
}

func (s *ServiceStore) Deactivate(ctx context.Context, id string) error {
	if err := requireAdmin(s.session); err != nil {
		return err
	}
	updated, err := s.api.DeactivateService(ctx, id)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to deactivate service"))
		return err
	}
	s.col.replace(*updated)
	s.notify.Success("Service deactivated")
	return nil
}
