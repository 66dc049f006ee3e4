package pool

import (
	"context"
	"runtime"
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/cpu"
)

func TestPool_DefaultWorkers(t *testing.T) {
	p := New(0)
	defer p.Close()

	assert.Equal(t, runtime.GOMAXPROCS(0), p.Workers())
}

func TestPool_RunCallsEveryIndex(t *testing.T) {
	p := New(4)
	defer p.Close()

	const n = 100
	seen := make([]int32, n)
	err := p.Run(context.Background(), n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	require.NoError(t, err)

	for i, c := range seen {
		assert.Equal(t, int32(1), c, "index %d", i)
	}

	var total uint64
	for _, s := range p.Stats() {
		total += s
	}
	assert.Equal(t, uint64(n), total)
}

func TestPool_RunIsABarrier(t *testing.T) {
	p := New(8)
	defer p.Close()

	for round := 0; round < 50; round++ {
		var done atomic.Int32
		require.NoError(t, p.Run(context.Background(), 8, func(int) {
			done.Add(1)
		}))
		require.Equal(t, int32(8), done.Load())
	}
}

func TestPool_Reused(t *testing.T) {
	p := New(2)
	defer p.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, p.Run(context.Background(), 2, func(int) {}))
	}
	assert.Len(t, p.Stats(), 2)
}

func TestPool_Closed(t *testing.T) {
	p := New(2)
	p.Close()
	p.Close()

	assert.True(t, p.Closed())
	assert.ErrorIs(t, p.Submit(context.Background(), func() {}), ErrClosed)

	called := false
	err := p.Run(context.Background(), 3, func(int) { called = true })
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, called)
}

func TestPool_SubmitCancelled(t *testing.T) {
	p := New(1)
	defer p.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() {
		close(started)
		<-block
	}))
	<-started
	// Fill the buffer so the next submit has to wait.
	for i := 0; i < 2; i++ {
		require.NoError(t, p.Submit(context.Background(), func() {}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)

	close(block)
}

func TestSlotIsPadded(t *testing.T) {
	assert.Greater(t, unsafe.Sizeof(slot{}), unsafe.Sizeof(cpu.CacheLinePad{}))
}
