// Package booking records interview requests made from a chat session.
package booking

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
)

const (
	minNameLength = 2
	maxNameLength = 100
	maxNotes      = 500
	dateLayout    = "2006-01-02"
	timeLayout    = "15:04"
)

type Service struct {
	repo core.BookingRepository
	now  func() time.Time
}

func NewService(repo core.BookingRepository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create validates req and stores it as a pending booking.
func (s *Service) Create(ctx context.Context, req core.BookingRequest) (core.Booking, error) {
	req = normalize(req)
	if err := Validate(req); err != nil {
		return core.Booking{}, err
	}

	now := s.now()
	b := core.Booking{
		ID:            uuid.NewString(),
		SessionID:     req.SessionID,
		Name:          req.Name,
		Email:         req.Email,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
		Status:        core.BookingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.SaveBooking(ctx, b); err != nil {
		return core.Booking{}, fmt.Errorf("failed to save booking: %w", err)
	}

	log.FromCtx(ctx).Info().
		Str("booking_id", b.ID).
		Str("session_id", b.SessionID).
		Str("date", b.PreferredDate).
		Msg("interview booked")

	return b, nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]core.Booking, error) {
	return s.repo.ListBookings(ctx, sessionID)
}

func normalize(req core.BookingRequest) core.BookingRequest {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.PreferredDate = strings.TrimSpace(req.PreferredDate)
	req.PreferredTime = strings.TrimSpace(req.PreferredTime)
	req.Notes = strings.TrimSpace(req.Notes)
	return req
}

// Validate reports the first invalid field wrapped in core.ErrInvalidBooking.
func Validate(req core.BookingRequest) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", core.ErrInvalidBooking, fmt.Sprintf(format, args...))
	}

	if req.SessionID == "" {
		return invalid("session id is required")
	}
	if n := utf8.RuneCountInString(req.Name); n < minNameLength || n > maxNameLength {
		return invalid("name must be %d-%d characters", minNameLength, maxNameLength)
	}
	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email {
		return invalid("email %q is not a valid address", req.Email)
	}
	if _, err := time.Parse(dateLayout, req.PreferredDate); err != nil {
		return invalid("date %q must be YYYY-MM-DD", req.PreferredDate)
	}
	if len(req.PreferredTime) != len(timeLayout) {
		return invalid("time %q must be HH:MM", req.PreferredTime)
	}
	if _, err := time.Parse(timeLayout, req.PreferredTime); err != nil {
		return invalid("time %q must be HH:MM", req.PreferredTime)
	}
	if utf8.RuneCountInString(req.Notes) > maxNotes {
		return invalid("notes must be at most %d characters", maxNotes)
	}
	return nil
}
