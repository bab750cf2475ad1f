// Package response writes the JSON envelope shared by every API route.
package response

import (
	"feedesk/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Kind       apperr.Kind `json:"kind,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

func OK(c *gin.Context, status int, data interface{}, msg string, warnings ...string) {
	c.JSON(status, Envelope{
		Status:     "success",
		StatusCode: status,
		Message:    msg,
		Data:       data,
		Warnings:   warnings,
	})
}

// Error writes err as an error envelope and aborts the chain. Errors that are
// not *apperr.Error are reported as server errors.
func Error(c *gin.Context, err error) {
	ae := apperr.From(err, "not found")
	if ae.Kind == apperr.KindServer {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(ae.Status(), Envelope{
		Status:     "error",
		StatusCode: ae.Status(),
		Message:    ae.Message,
		Kind:       ae.Kind,
	})
}
