package api

import (
	"text2phenotype.com/postag/logger"
	"github.com/rs/zerolog"
	"net/http"
)

var defaultLogger = logger.NewLogger("API")

type endpointLoggerFields struct {
	Method        string `json:"method"`
	Url           string `json:"url"`
	ContentLength int64  `json:"content_length"`
}

const (
	RequestInfoFieldsKey = "request_info"
	RequestIdHeader      = "X-Request-Id"
)

// makeRequestLogger tags every line of one request with its id, taken from
// the X-Request-Id header.
func makeRequestLogger(request *http.Request) zerolog.Logger {
	fields := endpointLoggerFields{
		Method:        request.Method,
		Url:           request.URL.String(),
		ContentLength: request.ContentLength,
	}
	return defaultLogger.
		With().
		Str("tid", request.Header.Get(RequestIdHeader)).
		Interface(RequestInfoFieldsKey, fields).
		Logger()
}
