package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Plain-text bodies for expected outcomes. These go out with status 200.
const (
	msgUsernameTaken = "Username already taken"
	msgUnknownID     = "unknown _id"
)

const msgInternalError = "Internal Server Error"

// HTTPError is a failure with an explicit status and client-facing message.
type HTTPError struct {
	Status  int
	Message string
	Err     error // Optional cause, logged but never sent
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// resolveError maps any error to the status and message sent to the client.
func resolveError(err error) (int, string) {
	var httpErr *HTTPError
	var fieldErrs validator.ValidationErrors
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status, httpErr.Message
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		// Report the first failing field only
		return http.StatusBadRequest, validationMessage(fieldErrs[0])
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

// bindError keeps field validation errors as they are and turns everything
// else from binding (malformed JSON, bad form encoding) into a 400.
func bindError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return err
	}
	return &HTTPError{Status: http.StatusBadRequest, Message: "invalid request body", Err: err}
}

var registerFieldNames sync.Once

// useFormFieldNames makes validator report fields by their form/json name
// ("username") instead of the Go field name ("Username").
func useFormFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}
