package sheet

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/louisbranch/poolsheet/internal/platform/requestctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestLoggingInterceptorLogsStatus(t *testing.T) {
	var lines []string
	interceptor := LoggingInterceptor(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod(MethodRoll)}

	_, err := interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.NotFound, "missing")
	})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.NotFound)
	}
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "/poolsheet.sheet.v1.SheetService/Roll NotFound") {
		t.Fatalf("line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "trace=-") {
		t.Fatalf("line = %q, want no trace id", lines[0])
	}
}

func TestLocaleInterceptor(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{name: "no metadata", ctx: context.Background(), want: "en-US"},
		{name: "header", ctx: metadata.NewIncomingContext(context.Background(), metadata.Pairs(LocaleHeader, " pt-BR ")), want: "pt-BR"},
		{
			name: "context value wins",
			ctx:  requestctx.WithLocale(metadata.NewIncomingContext(context.Background(), metadata.Pairs(LocaleHeader, "pt-BR")), "en-US"),
			want: "en-US",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			_, err := LocaleInterceptor()(tt.ctx, nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, _ any) (any, error) {
				got = requestctx.LocaleFromContext(ctx)
				return nil, nil
			})
			if err != nil {
				t.Fatalf("interceptor: %v", err)
			}
			if got != tt.want {
				t.Fatalf("locale = %q, want %q", got, tt.want)
			}
		})
	}
}
