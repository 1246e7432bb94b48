// Package response предоставляет утилиты для формирования единообразных
// JSON-ответов HTTP API.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response - базовая структура всех JSON-ответов: `status` ("OK" или
// "Error") и необязательное поле `error`.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError превращает ошибки `go-playground/validator` в одно
// сообщение, понятное оператору формы.
func ValidationError(errs validator.ValidationErrors) Response {
	return Response{
		Status: StatusError,
		Error:  ValidationMessage(errs),
	}
}

func ValidationMessage(errs validator.ValidationErrors) string {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "max":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "hostname_rfc1123":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid hostname", err.Field()))
		case "numeric":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a number", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return strings.Join(errMsgs, ", ")
}
