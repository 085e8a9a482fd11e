package util_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

func TestEventBusDeliversToAllSubscribers(t *testing.T) {
	bus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)

	var got atomic.Int32
	handler := func(_ context.Context, e util.Event) error {
		got.Add(int32(e.Payload.(int)))
		return nil
	}
	bus.Subscribe(util.EventAccessDecided, handler)
	bus.Subscribe(util.EventAccessDecided, handler)
	bus.Subscribe(util.EventCredentialsRecorded, func(context.Context, util.Event) error {
		return errors.New("ignored")
	})

	bus.Publish(ctx, util.EventAccessDecided, 2)
	bus.Publish(ctx, "unknown.event", 100)
	bus.Publish(ctx, util.EventCredentialsRecorded, nil)
	bus.Wait()

	assert.Equal(t, int32(4), got.Load())
}

func TestEventBusHandlersSurviveRequestCancellation(t *testing.T) {
	bus := util.NewEventBus()
	reqCtx, cancel := context.WithCancel(context.Background())

	var ctxErr atomic.Value
	bus.Subscribe(util.EventAccessDecided, func(ctx context.Context, _ util.Event) error {
		ctxErr.Store(ctx.Err() == nil)
		return nil
	})

	cancel()
	bus.Publish(reqCtx, util.EventAccessDecided, nil)
	bus.Wait()

	assert.Equal(t, true, ctxErr.Load())
}
