package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/ragdesk/internal/core"
)

type Booker interface {
	Create(ctx context.Context, req core.BookingRequest) (core.Booking, error)
}

type BookCommand struct {
	booker    Booker
	formatter *ResponseFormatter
}

func NewBookCommand(booker Booker) *BookCommand {
	return &BookCommand{booker: booker, formatter: NewResponseFormatter()}
}

func (c *BookCommand) Name() string { return "book" }

func (c *BookCommand) Description() string { return "Book an interview" }

func (c *BookCommand) usage() string {
	return c.formatter.Combine(
		c.formatter.Usage("/book name | email | YYYY-MM-DD | HH:MM | notes"),
		c.formatter.Examples([]string{"/book Ada Lovelace | ada@example.com | 2026-11-02 | 10:30 | video call"}),
	)
}

// Execute parses pipe-separated fields; notes are optional.
func (c *BookCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	fields := strings.Split(strings.Join(args, " "), "|")
	if len(fields) < 4 || len(fields) > 5 {
		return c.usage(), nil
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	req := core.BookingRequest{
		SessionID:     sessionID,
		Name:          fields[0],
		Email:         fields[1],
		PreferredDate: fields[2],
		PreferredTime: fields[3],
	}
	if len(fields) == 5 {
		req.Notes = fields[4]
	}

	b, err := c.booker.Create(ctx, req)
	if errors.Is(err, core.ErrInvalidBooking) {
		return c.formatter.Combine(c.formatter.Error(c.Name(), err), c.usage()), nil
	}
	if err != nil {
		return "", err
	}

	return c.formatter.Combine(
		c.formatter.Success("Interview requested"),
		c.formatter.Label("Booking", b.ID),
		c.formatter.Label("When", fmt.Sprintf("%s %s", b.PreferredDate, b.PreferredTime)),
		c.formatter.Label("Status", b.Status),
	), nil
}
