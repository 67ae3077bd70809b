package driver

import (
	"context"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

type driverRepository interface {
	Get(ctx context.Context, driverID string) (*domain.DriverLocation, error)
	Upsert(ctx context.Context, ping domain.LocationPing) error
	List(ctx context.Context) ([]domain.DriverLocation, error)
	ListByStatus(ctx context.Context, status domain.DriverStatus) ([]domain.DriverLocation, error)
	SetStatus(ctx context.Context, driverID string, status domain.DriverStatus) (bool, error)
	SetAvailability(ctx context.Context, driverID string, available bool) (bool, error)
	Delete(ctx context.Context, driverID string) (bool, error)
}

// Service coordinates driver registry business logic and orchestrates
// repository calls.
type Service struct {
	repo             driverRepository
	operationTimeout time.Duration
}

// NewService creates and configures a driver registry Service.
func NewService(r driverRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validatePing(p *domain.LocationPing) error {
	p.DriverID = strings.TrimSpace(p.DriverID)
	if p.DriverID == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidCoordinate(p.Latitude, p.Longitude) {
		return apperr.ErrInvalid
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperr.ErrInvalid
	}
	return nil
}

// UpsertLocation registers a driver on its first ping or refreshes its
// coordinates. Missing drivers are not an error, a first ping creates
// the registry row with availability=true and status=pending.
func (s *Service) UpsertLocation(ctx context.Context, p domain.LocationPing) error {
	if err := validatePing(&p); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Upsert(ctx, p)
}

// Get retrieves a driver registry row by its ID.
func (s *Service) Get(ctx context.Context, driverID string) (*domain.DriverLocation, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// List returns all driver registry rows.
func (s *Service) List(ctx context.Context) ([]domain.DriverLocation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx)
}

// ListByStatus returns driver registry rows filtered by onboarding
// status. The status string is parsed at the boundary; unknown values
// are rejected.
func (s *Service) ListByStatus(ctx context.Context, raw string) ([]domain.DriverLocation, error) {
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByStatus(ctx, status)
}

// SetStatus updates a driver's onboarding status, used by the external
// approval workflow.
func (s *Service) SetStatus(ctx context.Context, driverID, raw string) error {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return apperr.ErrInvalid
	}
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	updated, err := s.repo.SetStatus(ctx, driverID, status)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.ErrNotFound
	}
	return nil
}

// SetAvailability flips a driver's availability flag.
func (s *Service) SetAvailability(ctx context.Context, driverID string, available bool) error {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	updated, err := s.repo.SetAvailability(ctx, driverID, available)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a driver registry row by explicit admin action.
func (s *Service) Delete(ctx context.Context, driverID string) error {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	deleted, err := s.repo.Delete(ctx, driverID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}

// RegisterDriver handles a driver-registration event: the registry row
// is created with default (0,0) coordinates if it does not exist yet.
func (s *Service) RegisterDriver(ctx context.Context, driverID string, name *string, userID *string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return apperr.ErrInvalid
	}
	existing, err := s.repo.Get(ctx, driverID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.repo.Upsert(ctx, domain.LocationPing{
		DriverID: driverID,
		Name:     name,
		UserID:   userID,
	})
}
