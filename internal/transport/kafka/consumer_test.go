package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"food-delivery-dispatch/internal/service/payments"
	testlog "food-delivery-dispatch/internal/testutil"
)

type fakeGroup struct{}

func (fakeGroup) Consume(context.Context, []string, sarama.ConsumerGroupHandler) error { return nil }
func (fakeGroup) Errors() <-chan error {
	ch := make(chan error)
	close(ch)
	return ch
}
func (fakeGroup) Close() error              { return nil }
func (fakeGroup) Pause(map[string][]int32)  {}
func (fakeGroup) Resume(map[string][]int32) {}
func (fakeGroup) PauseAll()                 {}
func (fakeGroup) ResumeAll()                {}

func TestNewConsumer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	got, err := NewConsumer(rec.Logger(), nil, "gid", "topic", func(context.Context, payments.Event) error { return nil })
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "", "topic", nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "   ", nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestNewConsumer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	t.Parallel()

	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	sentinel := errors.New("boom")
	newConsumerGroup = func(_ []string, _ string, _ *sarama.Config) (sarama.ConsumerGroup, error) {
		return nil, sentinel
	}

	rec := testlog.New()
	got, err := NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "topic", nil)
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, got)
}

type countingGroup struct {
	fakeGroup
	calls chan struct{}
	err   error
}

func (g *countingGroup) Consume(ctx context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	g.calls <- struct{}{}
	<-ctx.Done()
	return g.err
}

func TestConsumer_Run_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	g := &countingGroup{calls: make(chan struct{}, 1), err: errors.New("closed")}
	c := &Consumer{group: g, topic: "payments", logger: testlog.New().Logger()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	<-g.calls
	cancel()
	require.NoError(t, <-done)
}

func TestConsumer_NilIsSafe(t *testing.T) {
	t.Parallel()

	var c *Consumer
	require.NoError(t, c.Run(context.Background()))
	require.NoError(t, c.Close())
}
