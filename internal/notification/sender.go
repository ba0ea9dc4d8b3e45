package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pawcare/internal/domain"
	"pawcare/internal/pkg/logger"
)

// transport delivers a single rendered message to a phone number.
type transport interface {
	send(ctx context.Context, to, body string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type SitterStore interface {
	GetByID(ctx context.Context, id string) (*domain.Sitter, error)
}

// Dispatcher renders booking and reminder notifications and hands them
// to a transport. Callers treat every Notify* method as best-effort.
type Dispatcher struct {
	transport transport
	users     UserStore
	sitters   SitterStore
}

func NewDispatcher(t transport, users UserStore, sitters SitterStore) *Dispatcher {
	return &Dispatcher{transport: t, users: users, sitters: sitters}
}

// NewTwilioDispatcher picks the WhatsApp transport when credentials are
// set and falls back to log-only delivery otherwise.
func NewTwilioDispatcher(accountSID, authToken, fromNumber string, users UserStore, sitters SitterStore) *Dispatcher {
	var t transport
	if accountSID != "" && authToken != "" && fromNumber != "" {
		t = newTwilioTransport(accountSID, authToken, fromNumber)
	} else {
		logger.Get().Info("twilio credentials not set, notifications will be logged only")
		t = logTransport{}
	}
	return NewDispatcher(t, users, sitters)
}

func (d *Dispatcher) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	if b.SitterID == nil {
		return nil
	}
	body := fmt.Sprintf("New walk request for %s, %d hour(s). Open the app to approve or decline.",
		b.StartTime.Format("Jan 2 15:04"), b.DurationHours)
	return d.sendToSitter(ctx, *b.SitterID, body)
}

func (d *Dispatcher) NotifyBookingApproved(ctx context.Context, b *domain.Booking) error {
	body := fmt.Sprintf("Your walk on %s was approved. Share the walk code with your sitter when they arrive.",
		b.StartTime.Format("Jan 2 15:04"))
	return d.sendToUser(ctx, b.OwnerID, body)
}

func (d *Dispatcher) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error {
	body := fmt.Sprintf("The walk on %s was cancelled.", b.StartTime.Format("Jan 2 15:04"))

	err := d.sendToUser(ctx, b.OwnerID, body)
	if b.SitterID != nil {
		if serr := d.sendToSitter(ctx, *b.SitterID, body); err == nil {
			err = serr
		}
	}
	return err
}

// NotifyVaccinationDue reminds the owner that a pet's vaccination due
// date is approaching.
func (d *Dispatcher) NotifyVaccinationDue(ctx context.Context, p *domain.Pet) error {
	if p.VaccinationDueDate == nil {
		return nil
	}
	body := fmt.Sprintf("Reminder: %s is due for vaccination on %s.",
		p.Name, p.VaccinationDueDate.Format("Jan 2, 2006"))
	return d.sendToUser(ctx, p.OwnerID, body)
}

func (d *Dispatcher) sendToSitter(ctx context.Context, sitterID, body string) error {
	s, err := d.sitters.GetByID(ctx, sitterID)
	if err != nil {
		return fmt.Errorf("resolve sitter %s: %w", sitterID, err)
	}
	if s == nil {
		return fmt.Errorf("sitter %s not found", sitterID)
	}
	return d.sendToUser(ctx, s.UserID, body)
}

func (d *Dispatcher) sendToUser(ctx context.Context, userID, body string) error {
	u, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", userID, err)
	}
	if u == nil {
		return fmt.Errorf("user %s not found", userID)
	}
	if u.Phone == "" {
		logger.Get().Debug("skipping notification, user has no phone", zap.String("user_id", userID))
		return nil
	}
	return d.transport.send(ctx, u.Phone, body)
}
