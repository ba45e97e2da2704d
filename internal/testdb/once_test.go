package testdb

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnceErr_RepeatsFirstFailure(t *testing.T) {
	t.Parallel()

	var o onceErr
	boom := errors.New("migration 00002 failed")
	calls := 0
	fn := func() error {
		calls++
		return boom
	}

	assert.ErrorIs(t, o.Do(fn), boom)
	assert.ErrorIs(t, o.Do(fn), boom)
	assert.ErrorIs(t, o.Do(func() error { return nil }), boom)
	assert.Equal(t, 1, calls)
}

func TestOnceErr_ConcurrentCallers(t *testing.T) {
	t.Parallel()

	var (
		o     onceErr
		mu    sync.Mutex
		calls int
		wg    sync.WaitGroup
	)
	boom := errors.New("boom")
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = o.Do(func() error {
				mu.Lock()
				calls++
				mu.Unlock()
				return boom
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, err := range errs {
		assert.ErrorIs(t, err, boom)
	}
}
