package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// PushSender abstracts the push provider; in practice it is the Expo client.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
}
