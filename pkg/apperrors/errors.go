package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with an HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err as its cause. The base sentinels
// stay untouched so they remain safe for errors.Is comparisons.
func Wrap(base *Error, err error) *Error {
	return &Error{Code: base.Code, Message: base.Message, Err: err}
}

// Is lets wrapped copies match their sentinel under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Bidding and offer error types
var (
	ErrInvalidAmount      = New(http.StatusBadRequest, "Bid amount must be greater than zero", nil)
	ErrInvalidExpiry      = New(http.StatusBadRequest, "Offer expiry must be greater than zero hours", nil)
	ErrProductNotFound    = New(http.StatusNotFound, "Product not found", nil)
	ErrBidNotFound        = New(http.StatusNotFound, "Bid not found", nil)
	ErrProductSold        = New(http.StatusConflict, "Product is already sold", nil)
	ErrOfferAlreadyActive = New(http.StatusConflict, "Another accepted offer is still active for this product", nil)
)

// Persistence error types
var (
	ErrPersistence       = New(http.StatusServiceUnavailable, "Storage operation failed", nil)
	ErrPartialAcceptance = New(http.StatusInternalServerError, "Offer accepted but bid record update failed", nil)
)

// HandleError writes err as a JSON response on a plain http.ResponseWriter.
func HandleError(w http.ResponseWriter, err error) {
	var appErr *Error
	if e, ok := err.(*Error); ok {
		appErr = e
	} else {
		appErr = Wrap(ErrInternalServer, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}

// ErrorMiddleware converts errors attached to the gin context into JSON
// responses with the right status code.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *Error
			if e, ok := err.(*Error); ok {
				appErr = e
			} else {
				appErr = Wrap(ErrInternalServer, err)
			}

			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
