package notifications

import (
	"context"
	"encoding/json"

	"github.com/redis/rueidis"
	"github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, n Notification) error {
	p.log.WithFields(logrus.Fields{
		"event":       n.Event,
		"task_id":     n.TaskID,
		"offer_id":    n.OfferID,
		"provider_id": n.ProviderID,
	}).Info("notification")
	return nil
}

// RedisPublisher publishes each notification as JSON on a pub/sub channel.
type RedisPublisher struct {
	client  rueidis.Client
	channel string
}

func NewRedisPublisher(client rueidis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	cmd := p.client.B().Publish().Channel(p.channel).Message(string(payload)).Build()
	return p.client.Do(ctx, cmd).Error()
}
