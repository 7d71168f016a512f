package concurrency

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex[string]()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = km.WithLock("convertkit_admin_notices", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, km.Len(), "사용이 끝난 키는 정리되어야 한다")
}

func TestKeyedMutex_WithLockReturnsError(t *testing.T) {
	km := NewKeyedMutex[int]()
	want := errors.New("write failed")

	assert.ErrorIs(t, km.WithLock(1, func() error { return want }), want)
	assert.Equal(t, 0, km.Len())
}

func TestKeyedMutex_UnlockWithoutLockPanics(t *testing.T) {
	km := NewKeyedMutex[string]()
	assert.Panics(t, func() { km.Unlock("missing") })
}
