package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ztrue/tracerr"
)

// NetworkErrorStatus is reported for calls that never received a response
// (timeouts, DNS failures, refused connections). It is not a real HTTP status.
const NetworkErrorStatus = 599

// ResponseError is returned when the Bugout API answered with a non-2xx status.
type ResponseError struct {
	Code    int
	Message string
	Detail  string
}

func (e *ResponseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Code)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Message, e.Code, e.Detail)
}

// NetworkError is returned when no response was received at all.
type NetworkError struct {
	Detail string
	Cause  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Detail)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

func (e *NetworkError) StatusCode() int {
	return NetworkErrorStatus
}

// UnexpectedResponseError covers local failures such as an unparseable body.
type UnexpectedResponseError struct {
	Message string
	Cause   error
}

func (e *UnexpectedResponseError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *UnexpectedResponseError) Unwrap() error {
	return e.Cause
}

// InvalidParametersError is raised before any request is sent.
type InvalidParametersError struct {
	Message string
}

func (e *InvalidParametersError) Error() string {
	return e.Message
}

func Response(code int, detail string) error {
	return &ResponseError{
		Code:    code,
		Message: "an exception occurred at Bugout API side",
		Detail:  detail,
	}
}

func Network(cause error) error {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	return &NetworkError{
		Detail: detail,
		Cause:  cause,
	}
}

func Unexpected(message string, cause error) error {
	if cause != nil {
		cause = tracerr.Wrap(cause)
	}
	return &UnexpectedResponseError{
		Message: message,
		Cause:   cause,
	}
}

func InvalidParameters(format string, args ...any) error {
	return &InvalidParametersError{
		Message: fmt.Sprintf(format, args...),
	}
}

// GetStatusCode extracts the HTTP status carried by err.
// Local failures map to 500.
func GetStatusCode(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Code
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.StatusCode()
	}
	var ie *InvalidParametersError
	if errors.As(err, &ie) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// GetDetail returns the server supplied detail, if any.
func GetDetail(err error) string {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Detail
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Detail
	}
	return ""
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsConflict(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.Code == http.StatusConflict
}

func IsNotFound(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.Code == http.StatusNotFound
}
