package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/service/orders"
	testlog "service-dispatch/internal/testutil"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	topic string
	ch    chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string              { return c.topic }
func (c fakeClaim) Partition() int32           { return 0 }
func (c fakeClaim) InitialOffset() int64       { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

func newOrderConsumer(logger *testlog.Recorder, onOrder OrderHandleFunc, onDriver DriverHandleFunc) *Consumer {
	return &Consumer{
		logger:       logger.Logger(),
		ordersTopic:  "order-events",
		driversTopic: "driver-registrations",
		onOrder:      onOrder,
		onDriver:     onDriver,
	}
}

func claimWith(topic string, values ...[]byte) fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for _, v := range values {
		ch <- &sarama.ConsumerMessage{Topic: topic, Value: v}
	}
	close(ch)
	return fakeClaim{topic: topic, ch: ch}
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := newOrderConsumer(rec,
		func(context.Context, orders.Event) error {
			t.Fatal("order handler must not be called")
			return nil
		},
		nil,
	)
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith("order-events", []byte("not-json")))

	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, rec.HasMsg("kafka permanent handle failure, skipping message"))
}

func TestConsumeClaim_EmptyOrderID_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := newOrderConsumer(rec,
		func(context.Context, orders.Event) error {
			calls++
			return nil
		},
		nil,
	)
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{OrderID: "   ", Status: "created"})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith("order-events", b))

	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Equal(t, 0, calls)
}

func TestConsumeClaim_OrderEvent_Dispatched(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var got orders.Event
	c := newOrderConsumer(rec,
		func(_ context.Context, e orders.Event) error {
			got = e
			return nil
		},
		nil,
	)
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{
		OrderID: " order-1 ",
		Status:  "created",
		ShopLat: 6.9271, ShopLon: 79.8612,
	})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith("order-events", b))

	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Equal(t, "order-1", got.OrderID, "order id is trimmed")
	require.Equal(t, 6.9271, got.ShopLat)
}

func TestConsumeClaim_DriverTopic_RoutesToDriverHandler(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var got orders.DriverEvent
	c := newOrderConsumer(rec,
		func(context.Context, orders.Event) error {
			t.Fatal("order handler must not be called for driver topic")
			return nil
		},
		func(_ context.Context, e orders.DriverEvent) error {
			got = e
			return nil
		},
	)
	h := &groupHandler{c: c}

	name := "Amal"
	b, _ := json.Marshal(DriverEventDTO{DriverID: "d-1", Name: &name})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith("driver-registrations", b))

	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Equal(t, "d-1", got.DriverID)
	require.NotNil(t, got.Name)
}

func TestConsumeClaim_TransientError_UnmarkedForRedelivery(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	sentinel := errors.New("db down")
	c := newOrderConsumer(rec,
		func(context.Context, orders.Event) error { return sentinel },
		nil,
	)
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{OrderID: "order-1", Status: "created"})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith("order-events", b))

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 0, sess.MarkedCount(), "transient failures leave the message unmarked")
}

func TestConsumeClaim_PermanentHandlerError_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := newOrderConsumer(rec,
		func(context.Context, orders.Event) error {
			return Permanent(errors.New("rejected"))
		},
		nil,
	)
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{OrderID: "order-1", Status: "created"})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith("order-events", b))

	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
}
