package adapter

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/transgare/backoffice/pkg/application"
	channels "github.com/transgare/backoffice/pkg/infrastructure/channels/adapter"
	"github.com/transgare/backoffice/pkg/domain"
)

func NewPublisher(client redis.UniversalClient, logger watermill.LoggerAdapter) (*redisstream.Publisher, error) {
	return redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: client,
	}, logger)
}

func NewSubscriber(client redis.UniversalClient, consumerGroup, consumer string, logger watermill.LoggerAdapter) (*redisstream.Subscriber, error) {
	return redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        client,
		ConsumerGroup: consumerGroup,
		Consumer:      consumer,
	}, logger)
}

// The redis buses are the generic watermill buses bound to redis stream
// publisher/subscriber pairs.

func NewRedisCommandBus[C domain.Command[T], T any](publisher *redisstream.Publisher, subscriber *redisstream.Subscriber, logger application.AppLogger) application.CommandBus[C, T] {
	return channels.NewWatermillCommandBus[C, T](publisher, subscriber, logger)
}

func NewRedisQueryBus[Q domain.Query[D], D any, R any](publisher *redisstream.Publisher, subscriber *redisstream.Subscriber, logger application.AppLogger) application.QueryBus[Q, D, R] {
	return channels.NewWatermillQueryBus[Q, D, R](publisher, subscriber, logger)
}

func NewRedisEventBus[E domain.Event[D], D any](publisher *redisstream.Publisher, subscriber *redisstream.Subscriber, logger application.AppLogger) application.EventBus[E, D] {
	return channels.NewWatermillEventBus[E, D](publisher, subscriber, logger)
}
