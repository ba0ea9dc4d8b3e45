package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pawcare/internal/domain"
	"pawcare/internal/pkg/logger"
)

type Service struct {
	bookings BookingRepository
	sitters  SitterDirectory
	pets     PetStore
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, sitters SitterDirectory, pets PetStore, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		sitters:  sitters,
		pets:     pets,
		notifs:   notifs,
	}
}

// Create validates the request, captures the sitter's rate, generates
// the one-time walk code and persists the booking in pending.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateBookingRequest) (*domain.Booking, error) {
	if req.DurationHours <= 0 {
		return nil, ErrValidation
	}
	if req.StartTime.IsZero() || req.StartTime.Before(time.Now()) {
		return nil, ErrValidation
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrNotFound
	}
	if pet.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	// Rate is read exactly once here. Later rate changes never touch
	// this booking's total.
	var rate float64
	if req.SitterID != nil {
		rate, err = s.sitters.GetRate(ctx, *req.SitterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	} else {
		rate = req.OfferedRate
	}
	if rate <= 0 {
		return nil, ErrValidation
	}

	total := rate * float64(req.DurationHours)
	total = math.Round(total*100) / 100

	code, err := GenerateWalkCode()
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		OwnerID:       ownerID,
		SitterID:      req.SitterID,
		PetID:         req.PetID,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		TotalCost:     total,
		Status:        domain.BookingPending,
		Notes:         req.Notes,
		WalkCode:      code,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if b.SitterID != nil {
		s.notify(ctx, "booking created", s.notifs.NotifyBookingCreated, b)
	}

	return b, nil
}

// Approve moves pending -> upcoming. The assigned sitter approves; on an
// open posting the approving sitter is claimed and approved in one
// compare-and-set write.
func (s *Service) Approve(ctx context.Context, bookingID, actorUserID string) (*domain.Booking, error) {
	b, sitter, err := s.loadForSitterAction(ctx, bookingID, actorUserID)
	if err != nil {
		return nil, err
	}

	if b.SitterID == nil {
		ok, err := s.bookings.ApproveUnclaimed(ctx, bookingID, sitter.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidStatusTransition
		}
	} else {
		if *b.SitterID != sitter.ID {
			return nil, ErrForbidden
		}
		ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingPending, domain.BookingUpcoming)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidStatusTransition
		}
	}

	updated, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "booking approved", s.notifs.NotifyBookingApproved, updated)
	return updated, nil
}

// Decline moves pending -> cancelled on behalf of the assigned sitter.
func (s *Service) Decline(ctx context.Context, bookingID, actorUserID string) (*domain.Booking, error) {
	b, sitter, err := s.loadForSitterAction(ctx, bookingID, actorUserID)
	if err != nil {
		return nil, err
	}
	if b.SitterID == nil || *b.SitterID != sitter.ID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingPending, domain.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "booking declined", s.notifs.NotifyBookingCancelled, updated)
	return updated, nil
}

// Cancel lets the requester withdraw a booking that is still pending.
func (s *Service) Cancel(ctx context.Context, bookingID, actorUserID string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.OwnerID != actorUserID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingPending, domain.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "booking withdrawn", s.notifs.NotifyBookingCancelled, updated)
	return updated, nil
}

// Claim atomically assigns the acting sitter to an unclaimed open
// posting. Of N concurrent claimers exactly one wins; the rest observe a
// lost compare-and-set and get ErrInvalidStatusTransition.
func (s *Service) Claim(ctx context.Context, bookingID, actorUserID string) (*domain.Booking, error) {
	_, sitter, err := s.loadForSitterAction(ctx, bookingID, actorUserID)
	if err != nil {
		return nil, err
	}

	ok, err := s.bookings.ClaimSitter(ctx, bookingID, sitter.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// BeginWalk checks the one-time walk code and moves upcoming -> active.
// A mismatched code leaves the booking untouched in upcoming.
func (s *Service) BeginWalk(ctx context.Context, bookingID, actorUserID, suppliedCode string) (*domain.Booking, error) {
	b, sitter, err := s.loadForSitterAction(ctx, bookingID, actorUserID)
	if err != nil {
		return nil, err
	}
	if b.SitterID == nil || *b.SitterID != sitter.ID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingUpcoming {
		return nil, ErrInvalidStatusTransition
	}

	if !codesMatch(suppliedCode, b.WalkCode) {
		return nil, ErrInvalidCode
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingUpcoming, domain.BookingActive)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// EndWalk moves active -> completed. Terminal.
func (s *Service) EndWalk(ctx context.Context, bookingID, actorUserID string) (*domain.Booking, error) {
	b, sitter, err := s.loadForSitterAction(ctx, bookingID, actorUserID)
	if err != nil {
		return nil, err
	}
	if b.SitterID == nil || *b.SitterID != sitter.ID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingActive, domain.BookingCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) GetByID(ctx context.Context, bookingID, actorUserID string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	if b.OwnerID == actorUserID {
		return b, nil
	}
	sitter, err := s.sitters.GetByUserID(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if sitter != nil && b.SitterID != nil && *b.SitterID == sitter.ID {
		return b, nil
	}
	return nil, ErrForbidden
}

func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID)
}

func (s *Service) ListForSitter(ctx context.Context, actorUserID string) ([]domain.Booking, error) {
	sitter, err := s.sitters.GetByUserID(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if sitter == nil {
		return nil, ErrForbidden
	}
	return s.bookings.ListBySitter(ctx, sitter.ID)
}

func (s *Service) ListOpenPostings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListOpenPostings(ctx)
}

// loadForSitterAction fetches the booking and resolves the acting user
// to their sitter profile.
func (s *Service) loadForSitterAction(ctx context.Context, bookingID, actorUserID string) (*domain.Booking, *domain.Sitter, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, ErrNotFound
	}

	sitter, err := s.sitters.GetByUserID(ctx, actorUserID)
	if err != nil {
		return nil, nil, err
	}
	if sitter == nil {
		return nil, nil, ErrForbidden
	}
	return b, sitter, nil
}

func (s *Service) notify(ctx context.Context, event string, send func(context.Context, *domain.Booking) error, b *domain.Booking) {
	if s.notifs == nil || b == nil {
		return
	}
	if err := send(ctx, b); err != nil {
		logger.Get().Warn("notification failed",
			zap.String("event", event),
			zap.String("booking_id", b.ID),
			zap.Error(err),
		)
	}
}
