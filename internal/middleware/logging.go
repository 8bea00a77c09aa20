package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id logged for each call.
const RequestIDHeader = "X-Request-Id"

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, caller, duration and outcome. Caller mistakes log at
// WARN, everything else that fails at ERROR.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			requestID := req.Header().Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx, caller := withCallerSlot(ctx)
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"request_id", requestID,
				"user_id", *caller,
				"peer", req.Peer().Addr,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				code := connect.CodeOf(err)
				attrs = append(attrs, "code", code, "error", err)
				if isClientError(code) {
					slog.Warn("RPC error", attrs...)
				} else {
					slog.Error("RPC error", attrs...)
				}
				return resp, err
			}

			resp.Header().Set(RequestIDHeader, requestID)
			slog.Info("RPC ok", attrs...)
			return resp, nil
		}
	}
}

func isClientError(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeUnauthenticated,
		connect.CodePermissionDenied, connect.CodeCanceled, connect.CodeFailedPrecondition:
		return true
	}
	return false
}
