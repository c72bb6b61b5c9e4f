package adapter

import (
	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"

	"github.com/transgare/backoffice/pkg/application"
	channels "github.com/transgare/backoffice/pkg/infrastructure/channels/adapter"
	"github.com/transgare/backoffice/pkg/domain"
)

// NewSubscriber builds a kafka subscriber with the consumer defaults used
// by the back office: oldest offset, errors surfaced, one partition topics.
func NewSubscriber(brokers []string, consumerGroup string, logger watermill.LoggerAdapter) (*kafka.Subscriber, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.ClientID = "gare-backoffice"

	return kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               brokers,
		Unmarshaler:           kafka.DefaultMarshaler{},
		ConsumerGroup:         consumerGroup,
		OverwriteSaramaConfig: saramaConfig,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}, logger)
}

func NewPublisher(brokers []string, logger watermill.LoggerAdapter) (*kafka.Publisher, error) {
	return kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
}

// The kafka buses are the generic watermill buses bound to kafka
// publisher/subscriber pairs.

func NewKafkaCommandBus[C domain.Command[T], T any](publisher *kafka.Publisher, subscriber *kafka.Subscriber, logger application.AppLogger) application.CommandBus[C, T] {
	return channels.NewWatermillCommandBus[C, T](publisher, subscriber, logger)
}

func NewKafkaQueryBus[Q domain.Query[D], D any, R any](publisher *kafka.Publisher, subscriber *kafka.Subscriber, logger application.AppLogger) application.QueryBus[Q, D, R] {
	return channels.NewWatermillQueryBus[Q, D, R](publisher, subscriber, logger)
}

func NewKafkaEventBus[E domain.Event[D], D any](publisher *kafka.Publisher, subscriber *kafka.Subscriber, logger application.AppLogger) application.EventBus[E, D] {
	return channels.NewWatermillEventBus[E, D](publisher, subscriber, logger)
}
