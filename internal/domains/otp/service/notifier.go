package service

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=../mocks/notifier_mock.go -package=mocks

import (
	"context"
	"salon/internal/domains/otp/model"

	"github.com/rs/zerolog/log"
)

// Notifier delivers a freshly generated code to the customer.
type Notifier interface {
	Send(ctx context.Context, recipient model.Recipient, subject model.Subject, code string) error
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that only writes the delivery to the log. The code itself is
// never logged.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Send(_ context.Context, recipient model.Recipient, subject model.Subject, _ string) error {
	log.Info().
		Int64("bookingID", subject.BookingID).
		Str("action", subject.Action).
		Str("phoneNo", recipient.PhoneNo).
		Str("email", recipient.Email).
		Msg("otp issued to customer")

	return nil
}
