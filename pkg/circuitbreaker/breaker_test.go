package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_PassesThroughResult(t *testing.T) {
	cb := New(DefaultConfig("test"))

	got, err := Execute(cb, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestExecute_OpensAfterFailures(t *testing.T) {
	cb := New(DefaultConfig("test"))
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := Execute(cb, func() (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	called := false
	_, err := Execute(cb, func() (int, error) { called = true; return 1, nil })
	assert.False(t, called)
	assert.True(t, IsRejected(err))
	assert.ErrorContains(t, err, "circuit breaker 'test' is open")
}

func TestExecute_IsSuccessfulKeepsBreakerClosed(t *testing.T) {
	clientErr := errors.New("bad request")
	cfg := DefaultConfig("test")
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, clientErr) }
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_, err := Execute(cb, func() (int, error) { return 0, clientErr })
		assert.ErrorIs(t, err, clientErr)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
