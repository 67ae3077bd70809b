package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/orders"
)

// OrderHandleFunc processes a single order event from Kafka.
type OrderHandleFunc func(context.Context, orders.Event) error

// DriverHandleFunc processes a single driver-registration event from Kafka.
type DriverHandleFunc func(context.Context, orders.DriverEvent) error

var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and dispatches order and
// driver-registration events to their handlers by topic.
type Consumer struct {
	group        sarama.ConsumerGroup
	logger       logx.Logger
	ordersTopic  string
	driversTopic string
	onOrder      OrderHandleFunc
	onDriver     DriverHandleFunc
}

// NewConsumer creates a new Kafka consumer. Missing broker, group or
// topic configuration disables the consumer (nil is returned).
func NewConsumer(logger logx.Logger, brokers []string, groupID, ordersTopic, driversTopic string, onOrder OrderHandleFunc, onDriver DriverHandleFunc) (*Consumer, error) {
	ordersTopic = strings.TrimSpace(ordersTopic)
	driversTopic = strings.TrimSpace(driversTopic)
	if len(brokers) == 0 || strings.TrimSpace(groupID) == "" || (ordersTopic == "" && driversTopic == "") {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:        group,
		logger:       logger,
		ordersTopic:  ordersTopic,
		driversTopic: driversTopic,
		onOrder:      onOrder,
		onDriver:     onDriver,
	}, nil
}

func (c *Consumer) topics() []string {
	out := make([]string, 0, 2)
	if c.ordersTopic != "" {
		out = append(out, c.ordersTopic)
	}
	if c.driversTopic != "" {
		out = append(out, c.driversTopic)
	}
	return out
}

// Run starts the consumer loop until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, c.topics(), h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Any("err", err))
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close closes the underlying consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var err error
		switch msg.Topic {
		case h.c.driversTopic:
			err = h.handleDriver(sess.Context(), msg.Value)
		default:
			err = h.handleOrder(sess.Context(), msg.Value)
		}

		switch {
		case err == nil:
		case IsPermanent(err):
			h.c.logger.Warn("kafka permanent handle failure, skipping message",
				logx.String("topic", msg.Topic),
				logx.Any("err", err),
			)
		default:
			// transient: leave the message unmarked so it is redelivered
			h.c.logger.Error("kafka handle failed, will retry",
				logx.String("topic", msg.Topic),
				logx.Any("err", err),
			)
			return err
		}

		sess.MarkMessage(msg, "")
	}
	return nil
}

func (h *groupHandler) handleOrder(ctx context.Context, value []byte) error {
	var dto EventDTO
	if err := json.Unmarshal(value, &dto); err != nil {
		return Permanent(err)
	}
	ev := ToDomain(dto)
	if ev.OrderID == "" {
		return Permanent(errEmptyOrderID)
	}
	return h.c.onOrder(ctx, ev)
}

func (h *groupHandler) handleDriver(ctx context.Context, value []byte) error {
	var dto DriverEventDTO
	if err := json.Unmarshal(value, &dto); err != nil {
		return Permanent(err)
	}
	ev := DriverToDomain(dto)
	if ev.DriverID == "" {
		return Permanent(errEmptyDriverID)
	}
	return h.c.onDriver(ctx, ev)
}
