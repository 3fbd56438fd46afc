package response

import "github.com/gin-gonic/gin"

// Error payload shapes for the public API.
//
// Client errors are field-keyed so a caller can highlight the offending
// input: {"email": "Email is required."}. Authentication and server
// errors carry a single opaque detail: {"detail": "..."}. The login
// endpoint deliberately returns the same detail for unknown emails and
// wrong passwords.

// FieldErrors maps input field names to human-readable messages.
type FieldErrors map[string]string

// Detail is the single-message error body.
type Detail struct {
	Detail string `json:"detail"`
}

// Fields writes a field-keyed client error.
func Fields(c *gin.Context, status int, errs FieldErrors) {
	c.JSON(status, errs)
}

// WithDetail writes a single-detail error.
func WithDetail(c *gin.Context, status int, msg string) {
	c.JSON(status, Detail{Detail: msg})
}

// AbortWithDetail writes a single-detail error and aborts the chain.
// Used by middleware.
func AbortWithDetail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Detail{Detail: msg})
}
