package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	base := errors.New("dial tcp: timeout")

	appErr := Wrap(base, ErrAssistantRemote, "list assistants")
	assert.Equal(t, ErrAssistantRemote, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
	assert.ErrorIs(t, appErr, base)
	assert.Equal(t, "list assistants", GetDetails(appErr))

	// wrapping again keeps the original code
	again := Wrap(appErr, ErrInternalServer)
	assert.Equal(t, ErrAssistantRemote, again.Code)

	assert.Nil(t, Wrap(nil, ErrInternalServer))
}

func TestExtractCode(t *testing.T) {
	assert.Equal(t, ErrAssistantAlreadyImported, ExtractCode(New(ErrAssistantAlreadyImported)))
	assert.Equal(t, ErrInternalServer, ExtractCode(errors.New("plain")))
	assert.True(t, Is(New(ErrAssistantValidation, "temperature"), ErrAssistantValidation))
}

func TestGetCode_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(424242))
	assert.Equal(t, "Invalid assistant field: temperature", FormatError(ErrAssistantValidation, "temperature"))
}
