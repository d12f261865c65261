package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"custodial-wallet/internal/core/domain"

	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	t.Helper()
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	return &Publisher{
		producer:         producer,
		transactionTopic: "wallet.transactions",
		walletTopic:      "wallet.wallets",
		log:              zerolog.Nop(),
	}, producer
}

func TestPublisher_PublishTransactionEvent(t *testing.T) {
	pub, producer := newMockPublisher(t)
	defer pub.Close()

	event := domain.TransactionEvent{
		EventType:     domain.TransactionEventCompleted,
		TransactionID: uuid.New(),
		Reference:     "TXN1700000000000123456",
		AccountID:     uuid.New(),
		Type:          domain.TransactionTypeTransfer,
		Status:        domain.TransactionStatusSuccess,
		Amount:        decimal.NewFromInt(100),
		Currency:      "USD",
		Timestamp:     time.Now().UTC(),
	}

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(raw []byte) error {
		var got domain.TransactionEvent
		if err := json.Unmarshal(raw, &got); err != nil {
			return err
		}
		assert.Equal(t, event.Reference, got.Reference)
		assert.Equal(t, domain.TransactionEventCompleted, got.EventType)
		return nil
	})

	err := pub.PublishTransactionEvent(context.Background(), event)
	require.NoError(t, err)
}

func TestPublisher_PublishWalletEvent_BrokerError(t *testing.T) {
	pub, producer := newMockPublisher(t)
	defer pub.Close()

	producer.ExpectSendMessageAndFail(assert.AnError)

	err := pub.PublishWalletEvent(context.Background(), domain.WalletEvent{
		Action:     domain.WalletEventBalanceUpdated,
		WalletID:   uuid.New(),
		AccountID:  uuid.New(),
		Currency:   "USD",
		NewBalance: decimal.NewFromInt(50),
		Timestamp:  time.Now().UTC(),
	})
	assert.Error(t, err)
}

func TestPublisher_RespectsCancelledContext(t *testing.T) {
	pub, _ := newMockPublisher(t)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.PublishWalletEvent(ctx, domain.WalletEvent{WalletID: uuid.New()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNopPublisher(t *testing.T) {
	pub := NewNopPublisher()
	assert.NoError(t, pub.PublishTransactionEvent(context.Background(), domain.TransactionEvent{}))
	assert.NoError(t, pub.PublishWalletEvent(context.Background(), domain.WalletEvent{}))
	assert.NoError(t, pub.Close())
}
