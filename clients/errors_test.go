package clients

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRateLimited(t *testing.T) {
	throttled := &StatusError{Provider: "microsoft", StatusCode: 429}

	assert.True(t, IsRateLimited(throttled))
	assert.True(t, IsRateLimited(fmt.Errorf("wrapped: %w", throttled)))
	assert.False(t, IsRateLimited(&StatusError{Provider: "microsoft", StatusCode: 503}))
	assert.False(t, IsRateLimited(errors.New("429 too many requests")), "only typed errors count")
	assert.False(t, IsRateLimited(nil))
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Provider: "microsoft", Op: "post", Err: cause}

	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "microsoft transport error during post: connection refused", err.Error())
	assert.False(t, IsTransport(cause))
	assert.False(t, IsRateLimited(err))
}

func TestStatusError_Message(t *testing.T) {
	assert.Equal(t, "openai API error 429", (&StatusError{Provider: "openai", StatusCode: 429}).Error())
	assert.Equal(t, "microsoft API error 429: quota", (&StatusError{Provider: "microsoft", StatusCode: 429, Body: "quota"}).Error())
}

func TestValidateTexts(t *testing.T) {
	assert.ErrorIs(t, ValidateTexts(nil), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateTexts([]string{}), ErrInvalidArgument)
	assert.NoError(t, ValidateTexts([]string{""}), "empty strings inside a batch are passed through")
}
