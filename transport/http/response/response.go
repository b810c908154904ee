// Package response writes the JSON envelopes returned by every endpoint:
// {"data": ...} on success, {"message": ...} for acknowledgements and
// {"error", "reason", "details"} for failures.
package response

import (
	"agenda/infras/otel"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/logger"
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error   *string        `json:"error,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its HTTP status. Failures carry a machine readable reason and details.
func WithError(writer http.ResponseWriter, err error) {
	message := err.Error()

	write(writer, failure.GetCode(err), Error{
		Error:   &message,
		Reason:  failure.GetReason(err),
		Details: failure.GetDetails(err),
	})
}

// Fail records err on the scope, logs it and writes the error envelope.
// Client errors are logged at warn level, everything else at error.
func Fail(writer http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	event := log.Warn()
	if failure.GetCode(err) >= http.StatusInternalServerError {
		event = log.Error()
	}

	event.Err(err).Msg(msg)

	WithError(writer, err)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// write encodes before touching the writer so a marshal failure still yields a 500.
func write(writer http.ResponseWriter, code int, payload any) {
	var body bytes.Buffer

	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	header := writer.Header()
	header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	header.Set("Content-Length", strconv.Itoa(body.Len()))
	writer.WriteHeader(code)

	if _, err := body.WriteTo(writer); err != nil {
		logger.ErrorWithStack(err)
	}
}
