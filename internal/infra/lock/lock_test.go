//go:build unit

package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shootbook/internal/infra/lock"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, ttl, wait time.Duration) (*lock.RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return lock.NewRedisLocker(client, ttl, wait), mr
}

func lockers(t *testing.T) map[string]shared.Locker {
	redisLocker, _ := newRedisLocker(t, time.Minute, 120*time.Millisecond)
	return map[string]shared.Locker{
		"memory": lock.NewMemoryLocker(120 * time.Millisecond),
		"redis":  redisLocker,
	}
}

func TestLocker_Exclusive(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			release, err := l.Acquire(ctx, "reservation:a")
			require.NoError(t, err)

			_, err = l.Acquire(ctx, "reservation:a")
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrOperationInProgress))

			other, err := l.Acquire(ctx, "reservation:b")
			require.NoError(t, err)
			other()

			release()
			again, err := l.Acquire(ctx, "reservation:a")
			require.NoError(t, err)
			again()
		})
	}
}

func TestLocker_WaitsForRelease(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			release, err := l.Acquire(ctx, "reservation:w")
			require.NoError(t, err)

			go func() {
				time.Sleep(20 * time.Millisecond)
				release()
			}()

			next, err := l.Acquire(ctx, "reservation:w")
			require.NoError(t, err)
			next()
		})
	}
}

func TestLocker_CancelledContext(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			release, err := l.Acquire(context.Background(), "reservation:c")
			require.NoError(t, err)
			defer release()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			_, err = l.Acquire(ctx, "reservation:c")

			require.Error(t, err)
			assert.False(t, errs.Is(err, errs.ErrOperationInProgress))
		})
	}
}

func TestMemoryLocker_SerialisesCriticalSection(t *testing.T) {
	l := lock.NewMemoryLocker(2 * time.Second)
	ctx := context.Background()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "reservation:x")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestMemoryLocker_ReleaseIsIdempotent(t *testing.T) {
	l := lock.NewMemoryLocker(50 * time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "reservation:r")
	require.NoError(t, err)
	release()
	release()

	again, err := l.Acquire(ctx, "reservation:r")
	require.NoError(t, err)
	again()
}

func TestRedisLocker_ReleaseKeepsForeignLease(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second, 50*time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "reservation:t")
	require.NoError(t, err)
	require.True(t, mr.Exists("shootbook:lock:reservation:t"))

	// Lease expired and another instance took the key.
	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists("shootbook:lock:reservation:t"))
	require.NoError(t, mr.Set("shootbook:lock:reservation:t", "someone-else"))

	release()

	got, err := mr.Get("shootbook:lock:reservation:t")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLocker_SetsTTL(t *testing.T) {
	l, mr := newRedisLocker(t, 30*time.Second, 50*time.Millisecond)

	release, err := l.Acquire(context.Background(), "reservation:ttl")
	require.NoError(t, err)
	defer release()

	assert.Equal(t, 30*time.Second, mr.TTL("shootbook:lock:reservation:ttl"))
}

func TestRedisLocker_ServerDown(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second, 50*time.Millisecond)
	mr.Close()

	_, err := l.Acquire(context.Background(), "reservation:down")

	require.Error(t, err)
	assert.False(t, errs.Is(err, errs.ErrOperationInProgress))
}
