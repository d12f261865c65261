package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"custodial-wallet/internal/core/domain"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// Publisher implements ports.EventPublisher on top of a Kafka sync producer.
// Events are emitted after the database commit; a broker outage loses events
// but never the movement, so callers treat publish errors as log-and-continue.
type Publisher struct {
	producer         sarama.SyncProducer
	transactionTopic string
	walletTopic      string
	log              zerolog.Logger
}

// NewPublisher creates a Kafka-backed event publisher. The producer is
// idempotent with acks=all so a broker-side retry cannot duplicate an event
// within a session.
func NewPublisher(brokers []string, transactionTopic, walletTopic string, log zerolog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers required")
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_7_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 250 * time.Millisecond

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Info().
		Strs("brokers", brokers).
		Str("transaction_topic", transactionTopic).
		Str("wallet_topic", walletTopic).
		Msg("Kafka event publisher ready")

	return &Publisher{
		producer:         producer,
		transactionTopic: transactionTopic,
		walletTopic:      walletTopic,
		log:              log,
	}, nil
}

// PublishTransactionEvent emits a transaction lifecycle event, keyed by
// account so one account's events stay ordered within a partition.
func (p *Publisher) PublishTransactionEvent(ctx context.Context, event domain.TransactionEvent) error {
	return p.publish(ctx, p.transactionTopic, event.AccountID.String(), event)
}

// PublishWalletEvent emits a wallet lifecycle event, keyed by wallet.
func (p *Publisher) PublishWalletEvent(ctx context.Context, event domain.WalletEvent) error {
	return p.publish(ctx, p.walletTopic, event.WalletID.String(), event)
}

func (p *Publisher) publish(ctx context.Context, topic, key string, value any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Msg("kafka publish failed")
		return fmt.Errorf("kafka publish failed: %w", err)
	}

	p.log.Debug().
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("event published")
	return nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

// NopPublisher discards all events. Used when no brokers are configured.
type NopPublisher struct{}

// NewNopPublisher creates an event publisher that drops everything.
func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (NopPublisher) PublishTransactionEvent(context.Context, domain.TransactionEvent) error {
	return nil
}

func (NopPublisher) PublishWalletEvent(context.Context, domain.WalletEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
