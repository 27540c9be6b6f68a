package realtime

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	pusher "github.com/pusher/pusher-http-go/v5"
	"github.com/techagentng/wayvee/config"
)

// PusherClient delivers events through Pusher Channels and signs private
// channel subscription grants.
type PusherClient struct {
	client *pusher.Client
}

func NewPusherClient(conf *config.Config) (*PusherClient, error) {
	if conf.PusherAppID == "" || conf.PusherKey == "" || conf.PusherSecret == "" {
		return nil, errors.New("missing pusher credentials")
	}
	return &PusherClient{
		client: &pusher.Client{
			AppID:   conf.PusherAppID,
			Key:     conf.PusherKey,
			Secret:  conf.PusherSecret,
			Cluster: conf.PusherCluster,
			Secure:  true,
		},
	}, nil
}

func (p *PusherClient) Publish(targetID uuid.UUID, event Event, payload interface{}) error {
	return p.client.Trigger(ChannelFor(targetID), string(event), payload)
}

func (p *PusherClient) AuthorizeChannel(socketID, channelName string) ([]byte, error) {
	params := fmt.Sprintf("socket_id=%s&channel_name=%s",
		url.QueryEscape(socketID), url.QueryEscape(channelName))
	return p.client.AuthorizePrivateChannel([]byte(params))
}
