package sheet

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/platform/requestctx"
	"google.golang.org/grpc/metadata"
)

// LocaleHeader is the gRPC metadata key carrying the caller's preferred locale.
const LocaleHeader = "x-poolsheet-locale"

// LocaleFromContext returns the requested locale: a requestctx value first,
// then incoming metadata, then the default locale.
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return apperrors.DefaultLocale
	}
	if locale := requestctx.LocaleFromContext(ctx); locale != "" {
		return locale
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return apperrors.DefaultLocale
	}
	for _, value := range md.Get(LocaleHeader) {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return apperrors.DefaultLocale
}

// WithLocale attaches locale to outgoing gRPC metadata.
func WithLocale(ctx context.Context, locale string) context.Context {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, LocaleHeader, locale)
}
