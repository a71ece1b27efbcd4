// Package service holds outbound integrations used by the reservation flow.
// Errors are logged and returned so callers may ignore failures without
// interrupting the main request flow.
package service

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    q "github.com/iliyamo/car-rental-reservation/internal/queue"
)

// Publisher sends reservation events to RabbitMQ.  A connection is opened
// per publish; reservation volume is low enough that pooling is not needed.
type Publisher struct {
    URL    string
    Logger *zap.Logger
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, logger *zap.Logger) *Publisher {
    if logger == nil {
        logger = zap.NewNop()
    }
    return &Publisher{URL: url, Logger: logger}
}

// PublishReservationConfirmed publishes ev to the reservation.confirmed
// queue as a persistent JSON message.
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, ev q.ReservationConfirmedEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        p.Logger.Warn("rabbitmq: dial failed", zap.Error(err))
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.Logger.Warn("rabbitmq: channel open failed", zap.Error(err))
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(q.ReservationQueueName, true, false, false, false, nil); err != nil {
        p.Logger.Warn("rabbitmq: queue declare failed", zap.Error(err))
        return err
    }

    pub, err := Encode(ev)
    if err != nil {
        p.Logger.Warn("rabbitmq: marshal event failed", zap.Error(err))
        return err
    }
    if err := ch.PublishWithContext(ctx, "", q.ReservationQueueName, false, false, pub); err != nil {
        p.Logger.Warn("rabbitmq: publish failed", zap.Error(err))
        return err
    }
    return nil
}

// Encode builds the AMQP message for ev.
func Encode(ev q.ReservationConfirmedEvent) (amqp.Publishing, error) {
    body, err := json.Marshal(ev)
    if err != nil {
        return amqp.Publishing{}, err
    }
    return amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }, nil
}
