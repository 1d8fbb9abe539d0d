package reboot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReturnsOnFirstHealthyCheck(t *testing.T) {
	service := &fakeInstanceService{statuses: []bool{true}}
	waiter := NewWaiter(zerolog.Nop(), service, time.Second, time.Minute)

	err := waiter.Wait(context.Background(), "i-0abc123")
	require.NoError(t, err)
	assert.Equal(t, 1, service.statusCalls)
}

func TestWaitPollsUntilHealthy(t *testing.T) {
	service := &fakeInstanceService{statuses: []bool{false, false, true}}
	waiter := NewWaiter(zerolog.Nop(), service, 5*time.Millisecond, time.Minute)

	err := waiter.Wait(context.Background(), "i-0abc123")
	require.NoError(t, err)
	assert.Equal(t, 3, service.statusCalls)
}

func TestWaitTimesOut(t *testing.T) {
	service := &fakeInstanceService{}
	waiter := NewWaiter(zerolog.Nop(), service, 5*time.Millisecond, 30*time.Millisecond)

	err := waiter.Wait(context.Background(), "i-0abc123")
	var timedOut *WaitTimeoutError
	require.ErrorAs(t, err, &timedOut)
	assert.Equal(t, "i-0abc123", timedOut.InstanceID)
	assert.Equal(t, 30*time.Millisecond, timedOut.Timeout)
	assert.GreaterOrEqual(t, service.statusCalls, 1)
}

func TestWaitPropagatesStatusErrors(t *testing.T) {
	service := &fakeInstanceService{statusErr: errors.New("throttled")}
	waiter := NewWaiter(zerolog.Nop(), service, 5*time.Millisecond, time.Minute)

	err := waiter.Wait(context.Background(), "i-0abc123")
	assert.ErrorContains(t, err, "throttled")
	var timedOut *WaitTimeoutError
	assert.False(t, errors.As(err, &timedOut))
}

func TestWaitStopsWhenCancelled(t *testing.T) {
	service := &fakeInstanceService{}
	waiter := NewWaiter(zerolog.Nop(), service, 50*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	err := waiter.Wait(ctx, "i-0abc123")
	assert.ErrorIs(t, err, context.Canceled)
}
