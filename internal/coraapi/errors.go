package coraapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("CORA API error %d", e.Status)
	}
	return fmt.Sprintf("CORA API error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsForbidden reports whether err is a 401 or 403 from the API.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden) || hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// newAPIError reads the server message from the "mensaje" or "error" field,
// falling back to the raw body.
func newAPIError(status int, body []byte) *APIError {
	var msg struct {
		Mensaje string `json:"mensaje"`
		Error   string `json:"error"`
	}
	e := &APIError{Status: status}
	if err := json.Unmarshal(body, &msg); err == nil {
		switch {
		case msg.Mensaje != "":
			e.Message = msg.Mensaje
		case msg.Error != "":
			e.Message = msg.Error
		}
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}
