package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookly/config"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Message struct {
	Topic string
	Key   string
	Value []byte
}

// NewJSONMessage encodes value as the message body.
func NewJSONMessage(topic, key string, value any) (Message, error) {
	body, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal kafka message value")

		return Message{}, fmt.Errorf("failed to marshal kafka message value: %w", err)
	}

	return Message{Topic: topic, Key: key, Value: body}, nil
}

// Decode unmarshals the JSON body of a message into T.
func Decode[T any](msg Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal kafka message value: %w", err)
	}

	return value, nil
}

// Handler processes one consumed message. A nil error commits the offset.
type Handler func(ctx context.Context, msg Message) error

type Client interface {
	Publish(ctx context.Context, messages ...Message) error
	Consume(ctx context.Context, topic string, handler Handler) error
	Close() error
}

type kafkaClientImpl struct {
	config    *config.Config
	writer    messageWriter
	newReader func(topic string) messageReader

	maxAttempts  uint
	retryBackoff time.Duration
}

func New(config *config.Config) Client {
	mechanism := plain.Mechanism{
		Username: config.Kafka.SASL.Username,
		Password: config.Kafka.SASL.Password,
	}

	dialer := &kafkaGo.Dialer{
		DualStack:     true,
		SASLMechanism: mechanism,
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Transport:              &kafkaGo.Transport{SASL: mechanism},
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireAll,
		AllowAutoTopicCreation: true,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("kafka client initialized")

	return &kafkaClientImpl{
		config:       config,
		writer:       writer,
		maxAttempts:  config.Kafka.HandlerMaxAttempts,
		retryBackoff: time.Duration(config.Kafka.HandlerRetryMillis) * time.Millisecond,
		newReader: func(topic string) messageReader {
			return kafkaGo.NewReader(kafkaGo.ReaderConfig{
				Brokers:     config.Kafka.Brokers,
				Topic:       topic,
				GroupID:     config.Kafka.ConsumerGroup,
				Dialer:      dialer,
				StartOffset: kafkaGo.FirstOffset,
			})
		},
	}
}

// Publish writes messages synchronously. Messages sharing a key land on the same partition.
func (k *kafkaClientImpl) Publish(ctx context.Context, messages ...Message) error {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		if message.Topic == "" {
			return errors.New("kafka message topic cannot be empty")
		}

		msgs = append(msgs, kafkaGo.Message{
			Topic: message.Topic,
			Key:   []byte(message.Key),
			Value: message.Value,
		})
	}

	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Msg("failed to publish kafka messages")

		return fmt.Errorf("failed to publish kafka messages: %w", err)
	}

	log.Debug().Int("count", len(msgs)).Msg("published kafka messages")

	return nil
}

// Consume reads topic with the configured consumer group until ctx is done. Messages are
// handled one at a time. A failing handler is retried with exponential backoff and the offset
// does not move while it retries. Once the attempts are used up the message is logged and
// committed, so it is dropped.
func (k *kafkaClientImpl) Consume(ctx context.Context, topic string, handler Handler) error {
	if topic == "" {
		return errors.New("kafka topic cannot be empty")
	}

	reader := k.newReader(topic)
	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka reader")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("kafka consumer stopped")

				return nil
			}

			log.Error().Err(err).Str("topic", topic).Msg("failed to read kafka message")

			return fmt.Errorf("failed to read kafka message: %w", err)
		}

		err = k.handle(ctx, handler, msg)
		if ctx.Err() != nil {
			log.Info().Str("topic", topic).Msg("kafka consumer stopped")

			return nil
		}

		if err != nil {
			log.Error().
				Err(err).
				Str("topic", topic).
				Str("key", string(msg.Key)).
				Int64("offset", msg.Offset).
				Msg("dropping kafka message after retries")
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to commit kafka message")
		}
	}
}

func (k *kafkaClientImpl) handle(ctx context.Context, handler Handler, msg kafkaGo.Message) error {
	policy := backoff.NewExponentialBackOff()
	if k.retryBackoff > 0 {
		policy.InitialInterval = k.retryBackoff
	}

	attempts := k.maxAttempts
	if attempts == 0 {
		attempts = 1
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, handler(ctx, Message{Topic: msg.Topic, Key: string(msg.Key), Value: msg.Value})
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(attempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().Err(err).Str("key", string(msg.Key)).Dur("retry_in", next).Msg("failed to handle kafka message")
		}),
	)

	return err //nolint:wrapcheck
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
