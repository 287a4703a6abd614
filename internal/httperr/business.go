package httperr

import (
	"errors"
	"strings"
)

// BusinessError is a domain rule violation, such as a state transition
// that is not allowed from the current state. It is reported as 409.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// Message turns the code into a sentence for the response body.
func (e BusinessError) Message() string {
	msg := strings.ReplaceAll(e.Code, "_", " ")
	if msg == "" {
		return "Request conflicts with current state"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
