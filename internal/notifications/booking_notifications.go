package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/9ssi7/exponent"
)

type BookingEvent string

const (
	BookingRequested BookingEvent = "REQUESTED"
	BookingConfirmed BookingEvent = "CONFIRMED"
	BookingRejected  BookingEvent = "REJECTED"
	BookingCancelled BookingEvent = "CANCELLED"
)

// SendBookingNotification pushes a booking update to every device token of
// the recipient. The caller decides who that is: the instructor for new
// requests, the client for status changes.
func SendBookingNotification(ctx context.Context, push PushSender, tokens []string, event BookingEvent, reference, classTitle string) error {
	if len(tokens) == 0 {
		return errors.New("no push tokens")
	}

	var title, body string
	switch event {
	case BookingRequested:
		title = "New booking request"
		body = fmt.Sprintf("Someone wants a spot in %s (ref %s)", classTitle, reference)
	case BookingConfirmed:
		title = "Booking confirmed"
		body = fmt.Sprintf("Your booking %s for %s is confirmed! 🎉", reference, classTitle)
	case BookingRejected:
		title = "Booking rejected"
		body = fmt.Sprintf("Your booking %s for %s was rejected.", reference, classTitle)
	case BookingCancelled:
		title = "Booking cancelled"
		body = fmt.Sprintf("Booking %s for %s was cancelled.", reference, classTitle)
	default:
		title = "Booking update"
		body = fmt.Sprintf("Your booking %s has an update.", reference)
	}

	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Sound: "default",
		})
	}

	_, err := push.Publish(ctx, msgs)
	return err
}
