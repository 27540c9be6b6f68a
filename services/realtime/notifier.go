package realtime

import (
	"strings"

	"github.com/google/uuid"
)

// Event is the kind of a realtime notification.
type Event string

const (
	// EventNewMessage carries {message, conversation_id, sender}.
	EventNewMessage Event = "new-message"
	// EventMessageRead carries {conversation_id, read_by}.
	EventMessageRead Event = "message-read"
	// EventTyping carries {user_id, is_typing}.
	EventTyping Event = "typing"
)

// PrivateChannelPrefix scopes a channel to exactly one account. Only the
// owner may ever be granted a subscription to it.
const PrivateChannelPrefix = "private-user-"

// ChannelFor returns the private channel name owned by the given account.
func ChannelFor(userID uuid.UUID) string {
	return PrivateChannelPrefix + userID.String()
}

// ChannelOwner extracts the account id encoded in a private channel name.
// The second return is false for malformed or non-private channel names.
func ChannelOwner(channelName string) (uuid.UUID, bool) {
	if !strings.HasPrefix(channelName, PrivateChannelPrefix) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimPrefix(channelName, PrivateChannelPrefix))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Notifier publishes fire-and-forget events to an account's private
// channel. Delivery is at most once: a disconnected subscriber simply
// misses the event and re-syncs from the durable store.
type Notifier interface {
	Publish(targetID uuid.UUID, event Event, payload interface{}) error
}

// ChannelAuthorizer signs a subscription grant for a private channel. The
// ownership check happens in the message service before signing.
type ChannelAuthorizer interface {
	AuthorizeChannel(socketID, channelName string) ([]byte, error)
}
