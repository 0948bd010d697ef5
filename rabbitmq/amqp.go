package rabbitmq

import (
	"context"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	defaultHeartbeat = 10 * time.Second
	defaultLocale    = "en_US"
)

type AMQPClient interface {
	Listen(ctx context.Context, exchange string, routingKey string, queueName string) (<-chan amqp.Delivery, error)
	Close() error
}

type defaultAMQPClient struct {
	conn *amqp.Connection
	uri  string

	consumeChannel *amqp.Channel

	notifyCloseChan chan *amqp.Error

	logger *lecho.Logger
}

type AMQPOption = func(client *defaultAMQPClient)

func WithAmqpLogger(logger *lecho.Logger) AMQPOption {
	return func(client *defaultAMQPClient) {
		client.logger = logger
	}
}

func DialAMQP(uri string, options ...AMQPOption) (AMQPClient, error) {
	client := &defaultAMQPClient{
		uri: uri,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
	}

	for _, opt := range options {
		opt(client)
	}

	err := client.connect()
	if err != nil {
		return nil, err
	}

	go client.reconnectionLoop()

	return client, nil
}

func (c *defaultAMQPClient) connect() error {
	conn, err := amqp.DialConfig(c.uri, amqp.Config{
		Heartbeat: defaultHeartbeat,
		Locale:    defaultLocale,
		Dial:      amqp.DefaultDial(time.Second * 3),
	})
	if err != nil {
		return err
	}

	consumeChannel, err := conn.Channel()
	if err != nil {
		return err
	}

	notifyCloseChan := make(chan *amqp.Error)
	conn.NotifyClose(notifyCloseChan)

	c.conn = conn
	c.consumeChannel = consumeChannel
	c.notifyCloseChan = notifyCloseChan

	return nil
}

func (c *defaultAMQPClient) reconnectionLoop() {
	for {
		amqpError, ok := <-c.notifyCloseChan
		if !ok {
			// deliberate Close, nothing to restore
			return
		}
		c.logger.Error(amqpError)

		exponentialBackoff := backoff.NewExponentialBackOff()
		exponentialBackoff.MaxInterval = time.Second * 10
		exponentialBackoff.MaxElapsedTime = time.Minute

		c.logger.Info("amqp: trying to reconnect...")
		if err := backoff.Retry(c.connect, exponentialBackoff); err != nil {
			c.logger.Errorf("amqp: could not reconnect: %v", err)
			return
		}
		c.logger.Info("amqp: reconnected")
	}
}

func (c *defaultAMQPClient) Listen(ctx context.Context, exchange string, routingKey string, queueName string) (<-chan amqp.Delivery, error) {
	err := c.consumeChannel.ExchangeDeclare(
		exchange,
		// topic exchanges route messages to queues based on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges survive server restarts
		true,
		false,
		// Non-Internal exchanges accept direct publishing
		false,
		// Nowait: wait for a server response to check whether the
		// exchange was created successfully
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	queue, err := c.consumeChannel.QueueDeclare(
		queueName,
		true,
		false,
		// Non-Exclusive: multiple portal instances spread the load
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	err = c.consumeChannel.QueueBind(
		queue.Name,
		routingKey,
		exchange,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := c.consumeChannel.Consume(
		queue.Name,
		"",
		// manual acknowledgement, the handler decides
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return deliveries, nil
}

func (c *defaultAMQPClient) Close() error {
	return c.conn.Close()
}
