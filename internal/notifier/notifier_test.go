package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func received(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

func TestNotifier_Subscribe_Unsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe("store-1")
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Len())

	_, open := <-ch
	assert.False(t, open, "unsubscribe closes the channel")
}

func TestNotifier_Broadcast_Scoped(t *testing.T) {
	n := New()

	mine := n.Subscribe("store-1")
	other := n.Subscribe("store-2")
	all := n.Subscribe(AllStores)
	defer n.Unsubscribe(mine)
	defer n.Unsubscribe(other)
	defer n.Unsubscribe(all)

	n.Broadcast("store-1")

	assert.True(t, received(mine), "subscriber of the changed store is pinged")
	assert.True(t, received(all), "wildcard subscriber is pinged")
	assert.False(t, received(other), "subscribers of other stores are not pinged")
}

func TestNotifier_Broadcast_NonBlocking(t *testing.T) {
	n := New()

	ch := n.Subscribe("store-1")
	defer n.Unsubscribe(ch)

	// Fill the channel buffer
	ch <- struct{}{}

	done := make(chan struct{})
	go func() {
		n.Broadcast("store-1")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("Broadcast blocked on full channel")
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	const numGoroutines = 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe("store-1")
			n.Broadcast("store-1")
			n.Unsubscribe(ch)
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, n.Len())
}
