package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorNoticeIsMessage(t *testing.T) {
	err := NewValidationError("❌ Укажите ваш ник.", nil)
	domainErr := ToDomainError(err)
	assert.Equal(t, CodeValidationFailed, domainErr.Code)
	assert.Equal(t, "❌ Укажите ваш ник.", domainErr.Notice())
}

func TestInfrastructureErrorsCollapseToGenericNotice(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	for _, err := range []error{
		NewResourceError("create channel", cause),
		NewTransportError("SendMessage", cause),
		NewInternalError(cause),
	} {
		assert.Equal(t, "❌ Произошла ошибка. Попробуйте позже.", ToDomainError(err).Notice())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransportError("React", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	err := NewNotFound("channel", nil)
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeUnauthorized))
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))

	wrapped := fmt.Errorf("sweep: %w", err)
	assert.True(t, IsCode(wrapped, CodeNotFound))
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewAuthorizationError("❌ У вас нет прав для управления тикетами!")
	converted := ToDomainError(original)
	require.NotNil(t, converted)
	assert.Equal(t, CodeUnauthorized, converted.Code)

	generic := ToDomainError(errors.New("plain"))
	assert.Equal(t, CodeInternalError, generic.Code)
}
