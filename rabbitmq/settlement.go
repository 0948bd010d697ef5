package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	"github.com/rtphub/rtphub.go/lib/service"
	"github.com/ziflex/lecho/v3"
)

// SettlementHandler applies one externally decided payment outcome.
type SettlementHandler = func(ctx context.Context, event service.SettlementEvent) error

type Client interface {
	// StartSettlementConsumer consumes settlement events until the context
	// is cancelled. Delivery is at-least-once; handler idempotence comes
	// from the payment state machine.
	StartSettlementConsumer(ctx context.Context, handler SettlementHandler) error
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	settlementExchange      string
	settlementConsumerQueue string
}

type ClientOption = func(client *DefaultClient)

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func WithSettlementExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.settlementExchange = exchange
	}
}

func WithSettlementConsumerQueueName(name string) ClientOption {
	return func(client *DefaultClient) {
		client.settlementConsumerQueue = name
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
		settlementExchange:      "rtp_settlement",
		settlementConsumerQueue: "rtp_settlement_consumer",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error {
	return client.amqpClient.Close()
}

func (client *DefaultClient) StartSettlementConsumer(ctx context.Context, handler SettlementHandler) error {
	deliveries, err := client.amqpClient.Listen(ctx, client.settlementExchange, "settlement.#", client.settlementConsumerQueue)
	if err != nil {
		return err
	}

	client.logger.Info("Starting settlement event consumer")
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}

			var event service.SettlementEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				client.logger.Errorf("Could not decode settlement event: %v", err)
				sentry.CaptureException(err)
				delivery.Nack(false, false)
				continue
			}

			if err := handler(ctx, event); err != nil {
				client.logger.Errorf("Error handling settlement event: payment_request_id:%v error: %v", event.PaymentRequestID, err)
				sentry.CaptureException(err)
				// redelivering an illegal event cannot make it legal,
				// only store errors are worth a retry
				var validationErr *service.ValidationError
				var transitionErr *service.InvalidTransitionError
				requeue := !errors.As(err, &validationErr) && !errors.As(err, &transitionErr)
				delivery.Nack(false, requeue)
				continue
			}

			delivery.Ack(false)
		}
	}
}
