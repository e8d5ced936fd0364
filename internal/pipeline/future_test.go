package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitTask(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown(time.Second)

	f := SubmitTask(pool, func() (int, error) { return 42, nil })

	v, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestThen_Chains(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown(time.Second)

	a := SubmitTask(pool, func() (int, error) { return 10, nil })
	b := Then(pool, a, func(v int) (int, error) { return v * 2, nil })
	c := Then(pool, b, func(v int) (string, error) { return "value", nil })

	v, err := b.Wait()
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	s, err := c.Wait()
	require.NoError(t, err)
	assert.Equal(t, "value", s)
}

func TestThen_ShortCircuitsOnError(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown(time.Second)

	boom := errors.New("boom")
	a := SubmitTask(pool, func() (int, error) { return 0, boom })

	ran := false
	b := Then(pool, a, func(v int) (int, error) {
		ran = true
		return v, nil
	})

	_, err := b.Wait()
	require.ErrorIs(t, err, boom)
	assert.False(t, ran, "dependent stage must not run after upstream failure")
}

func TestCombine_JoinsBoth(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown(time.Second)

	a := SubmitTask(pool, func() (int, error) { return 3, nil })
	b := SubmitTask(pool, func() (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 4, nil
	})
	c := Combine(pool, a, b, func(x, y int) (int, error) { return x + y, nil })

	v, err := c.Wait()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestCombine_PropagatesError(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown(time.Second)

	boom := errors.New("boom")
	a := SubmitTask(pool, func() (int, error) { return 1, nil })
	b := SubmitTask(pool, func() (int, error) { return 0, boom })
	c := Combine(pool, a, b, func(x, y int) (int, error) { return x + y, nil })

	_, err := c.Wait()
	require.ErrorIs(t, err, boom)
}

func TestFuture_FirstCompletionWins(t *testing.T) {
	f := NewFuture[string]()

	assert.True(t, f.Complete("first", nil))
	assert.False(t, f.Complete("second", nil), "late completion must be discarded")

	v, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestSubmitTask_PoolClosed(t *testing.T) {
	pool := NewWorkerPool(1)
	require.NoError(t, pool.Shutdown(time.Second))

	f := SubmitTask(pool, func() (int, error) { return 1, nil })

	_, err := f.Wait()
	require.ErrorIs(t, err, ErrPoolClosed)
}
