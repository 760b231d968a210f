// Package events publishes written ledger records to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/api-sage/core-banking/src/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// TransactionEvent is the wire shape of a ledger record on the topic.
type TransactionEvent struct {
	EventID    string    `json:"eventId"`
	TrackingID int64     `json:"trackingId"`
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
	Amount     string    `json:"amount"`
	Note       string    `json:"note"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewTransactionEvent(transaction domain.Transaction) TransactionEvent {
	return TransactionEvent{
		EventID:    uuid.NewString(),
		TrackingID: transaction.ID,
		SenderID:   transaction.SenderID,
		ReceiverID: transaction.ReceiverID,
		Amount:     transaction.Amount.String(),
		Note:       transaction.Note,
		Type:       string(transaction.Type),
		Status:     string(transaction.Status),
		CreatedAt:  transaction.CreatedAt,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
	}
}

// Publish keys messages by sender account so one account's records stay
// ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, transaction domain.Transaction) error {
	payload, err := json.Marshal(NewTransactionEvent(transaction))
	if err != nil {
		return fmt.Errorf("marshal transaction event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(transaction.SenderID, 10)),
		Value: payload,
		Time:  transaction.CreatedAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(transaction.Type)},
			{Key: "status", Value: []byte(transaction.Status)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write transaction event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Transaction) error {
	return nil
}
