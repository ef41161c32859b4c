package sheet

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/poolsheet/internal/platform/requestctx"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs each unary call with its status code and, when a
// span is active, its trace id.
func LoggingInterceptor(logf func(string, ...any)) grpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := codes.OK
		if err != nil {
			code = status.Code(err)
		}
		traceID := "-"
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			traceID = sc.TraceID().String()
		}
		logf("%s %s %s trace=%s", info.FullMethod, code, time.Since(start).Round(time.Microsecond), traceID)
		return resp, err
	}
}

// LocaleInterceptor copies the caller's locale header into the request
// context so handlers below the transport read it through requestctx.
func LocaleInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if requestctx.LocaleFromContext(ctx) == "" {
			ctx = requestctx.WithLocale(ctx, LocaleFromContext(ctx))
		}
		return handler(ctx, req)
	}
}
