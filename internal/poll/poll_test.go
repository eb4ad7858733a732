package poll

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackoff_Defaults(t *testing.T) {
	b := NewBackoff(0, 0)
	assert.Equal(t, InitialInterval, b.Current())

	b = NewBackoff(time.Minute, time.Second)
	b.Grow()
	assert.Equal(t, time.Minute, b.Current())
}

func TestBackoff_GrowAndReset(t *testing.T) {
	b := NewBackoff(2*time.Second, 4*time.Second)

	b.Grow()
	assert.Equal(t, 3*time.Second, b.Current())
	b.Grow()
	assert.Equal(t, 4*time.Second, b.Current())
	b.Grow()
	assert.Equal(t, 4*time.Second, b.Current())

	b.Reset()
	assert.Equal(t, 2*time.Second, b.Current())
}

func TestBackoff_NextJitter(t *testing.T) {
	b := NewBackoff(time.Second, time.Second)
	for range 50 {
		d := b.Next()
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, time.Second+time.Duration(JitterFactor*float64(time.Second)))
	}
}

func TestUntil(t *testing.T) {
	calls := 0
	err := Until(context.Background(), NewBackoff(time.Millisecond, time.Millisecond), func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntil_CheckError(t *testing.T) {
	boom := errors.New("boom")
	err := Until(context.Background(), NewBackoff(time.Millisecond, time.Millisecond), func(context.Context) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestUntil_ContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Until(ctx, NewBackoff(time.Millisecond, 2*time.Millisecond), func(context.Context) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type item struct{ id string }

func TestWatcher_PollReportsOnlyNewItems(t *testing.T) {
	rounds := [][]item{
		{{"a"}, {"b"}},
		{{"a"}, {"b"}},
		{{"a"}, {"b"}, {"c"}},
	}
	n := 0
	fetch := func(context.Context) ([]item, error) {
		r := rounds[n]
		n++
		return r, nil
	}
	b := NewBackoff(time.Second, 10*time.Second)
	w := NewWatcher(fetch, func(i item) string { return i.id }, b)

	got, err := w.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{"a"}, {"b"}}, got)
	assert.Equal(t, time.Second, b.Current())

	got, err = w.Poll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1500*time.Millisecond, b.Current())

	got, err = w.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{"c"}}, got)
	assert.Equal(t, time.Second, b.Current())
}

func TestWatcher_RunStopsWhenHandlerDeclines(t *testing.T) {
	n := 0
	fetch := func(context.Context) ([]item, error) {
		n++
		if n == 2 {
			return nil, errors.New("temporary")
		}
		return []item{{strconv.Itoa(n)}}, nil
	}
	w := NewWatcher(fetch, func(i item) string { return i.id }, NewBackoff(time.Millisecond, time.Millisecond))

	var errs []error
	w.OnError = func(err error) { errs = append(errs, err) }

	var got []string
	err := w.Run(context.Background(), func(i item) bool {
		got = append(got, i.id)
		return len(got) < 2
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, got)
	assert.Len(t, errs, 1)
}

func TestWatcher_RunContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	fetch := func(context.Context) ([]item, error) { return nil, nil }
	w := NewWatcher(fetch, func(i item) string { return i.id }, NewBackoff(time.Millisecond, 2*time.Millisecond))

	err := w.Run(ctx, func(item) bool { return true })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
