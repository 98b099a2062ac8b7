package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

const (
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer = 1000
	ErrInvalidParams  = 1001
	ErrNotFound       = 1002
	ErrServiceUnavail = 1008

	// Assistant errors (6000-6999)
	ErrAssistantNotFound        = 6000
	ErrAssistantValidation      = 6001
	ErrAssistantCredential      = 6002
	ErrAssistantRemote          = 6003
	ErrAssistantMalformed       = 6004
	ErrAssistantRemoteNotFound  = 6005
	ErrAssistantAlreadyImported = 6006
	ErrAssistantAlreadyExists   = 6007
)

var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	ErrInternalServer: {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:  {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:       {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrServiceUnavail: {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	ErrAssistantNotFound:        {ErrAssistantNotFound, http.StatusNotFound, "Assistant not found"},
	ErrAssistantValidation:      {ErrAssistantValidation, http.StatusBadRequest, "Invalid assistant field"},
	ErrAssistantCredential:      {ErrAssistantCredential, http.StatusPreconditionFailed, "OpenAI secret key is not configured"},
	ErrAssistantRemote:          {ErrAssistantRemote, http.StatusBadGateway, "OpenAI request failed"},
	ErrAssistantMalformed:       {ErrAssistantMalformed, http.StatusBadGateway, "OpenAI returned a malformed response"},
	ErrAssistantRemoteNotFound:  {ErrAssistantRemoteNotFound, http.StatusNotFound, "Assistant not found on the OpenAI platform"},
	ErrAssistantAlreadyImported: {ErrAssistantAlreadyImported, http.StatusConflict, "Assistant has already been imported"},
	ErrAssistantAlreadyExists:   {ErrAssistantAlreadyExists, http.StatusConflict, "Assistant already exists"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
