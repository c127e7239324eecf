// Package http provides HTTP utilities including chi-compatible error handling
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/settle-rebalancer/pkg/app/errors"
)

// HandlerFunc defines a function that returns an error for clean error handling
type HandlerFunc func(http.ResponseWriter, *http.Request) error

type errorResponse struct {
	ErrMsg     string `json:"error"`
	ErrMsgCode int    `json:"code"`
	RequestID  string `json:"requestId,omitempty"`
}

// HandleError wraps an error-returning HandlerFunc into a standard http.HandlerFunc.
//
// Usage with chi:
//
//	r.Post("/transfers", http.HandleError(handler.submit))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return HandleErrorWithLogger(zap.NewNop(), h)
}

// HandleErrorWithLogger is HandleError that also logs the returned error.
// Internal errors are logged at error level, client errors at debug.
func HandleErrorWithLogger(logger *zap.Logger, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		}
		if apperrors.IsInternalError(err) {
			logger.Error("Request failed", fields...)
		} else {
			logger.Debug("Request rejected", fields...)
		}
		DefaultErrorHandler(w, r, err)
	}
}

// DefaultErrorHandler renders err as a JSON error body. Only ServiceError
// messages reach the client; anything else becomes a generic 500.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{
		ErrMsg:     "Unexpected Service Error",
		ErrMsgCode: http.StatusInternalServerError,
		RequestID:  middleware.GetReqID(r.Context()),
	}

	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		resp.ErrMsg = svcErr.Message
		resp.ErrMsgCode = svcErr.StatusCode()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.ErrMsgCode)
	_ = json.NewEncoder(w).Encode(&resp)
}
