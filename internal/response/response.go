// Package response writes the JSON envelope shared by every endpoint:
// {success, message?, data?, error?}. Handlers call the helpers instead of
// assembling maps so the envelope stays uniform across the API.
package response

import "github.com/labstack/echo/v4"

// Envelope is the body shape of every JSON response.  Code carries the
// machine-readable variant for authentication failures.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// Success writes a success envelope with an optional payload.
func Success(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Error: message})
}

// ErrorCode writes a failure envelope carrying a machine-readable code, used
// by the authentication gate so clients can branch on the 401 variant.
func ErrorCode(c echo.Context, status int, message, code string) error {
	return c.JSON(status, Envelope{Success: false, Error: message, Code: code})
}
