package response

import (
	"encoding/json"
	"net/http"
	"salon/infras/otel"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/logger"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error     *string `json:"error,omitempty"`
	RequestID string  `json:"request_id,omitempty"`
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

// WithError maps err to its failure code and echoes the request ID. Server-side errors are logged
// and answered with the generic status text only.
func WithError(writer http.ResponseWriter, r *http.Request, err error) {
	code := failure.GetCode(err)
	msg := err.Error()

	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)
		msg = http.StatusText(code)
	}

	body := Error{Error: &msg}
	if r != nil {
		body.RequestID = middleware.GetReqID(r.Context())
	}

	write(writer, code, body)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

// Fail records err on the handler's span, logs it with msg and writes the error response. Client
// errors are logged at warn level.
func Fail(writer http.ResponseWriter, r *http.Request, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	event := log.Warn()
	if failure.GetCode(err) >= http.StatusInternalServerError {
		event = log.Error()
	}

	event.Err(err).Str("path", r.URL.Path).Msg(msg)

	WithError(writer, r, err)
}
