package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic — топик событий кошелька
const DefaultTopic = "wallet.events"

// CleanBrokers убирает пробелы и пустые адреса из списка брокеров
func CleanBrokers(list []string) []string {
	brokers := []string{}
	for _, b := range list {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink публикует события в Kafka, ключ сообщения — id пропуска
type KafkaSink struct {
	w messageWriter
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaSink{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

func (k *KafkaSink) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return k.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(messageKey(ev)),
		Value: data,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(ev.Name)},
		},
	})
}

func (k *KafkaSink) Close() error { return k.w.Close() }

func messageKey(ev Event) string {
	switch p := ev.Payload.(type) {
	case PassPayload:
		if p.PassID != "" {
			return p.PassID
		}
	case LoadPayload:
		return p.URL
	}
	return ev.ID
}
