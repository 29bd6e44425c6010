package util

import (
	"errors"
	"testing"
	"time"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	patches := gomonkey.ApplyFunc(time.Sleep, func(time.Duration) {})
	defer patches.Reset()

	var calls int
	err := Retry(3, time.Second, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhausted(t *testing.T) {
	patches := gomonkey.ApplyFunc(time.Sleep, func(time.Duration) {})
	defer patches.Reset()

	var calls int
	err := Retry(2, time.Second, func() error {
		calls++
		return errors.New("permanent")
	})
	assert.EqualError(t, err, "permanent")
	assert.Equal(t, 2, calls)
}
