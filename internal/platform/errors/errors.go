package errors

import (
	stderrors "errors"

	"github.com/louisbranch/poolsheet/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain is the ErrorInfo domain of poolsheet errors.
const Domain = "github.com/louisbranch/poolsheet"

// DefaultLocale is used when a caller does not carry a locale preference.
const DefaultLocale = i18n.BaseLocale

// Error is a coded engine error. Message is for logs; users see the
// catalog message for Code rendered with Metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// New returns an error with no metadata.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata returns an error whose metadata fills the message template.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap codes cause while keeping it in the chain.
func Wrap(cause error, code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata, Cause: cause}
}

// GetCode returns the code carried by err, or CodeUnknown.
func GetCode(err error) Code {
	if domainErr, ok := asError(err); ok {
		return domainErr.Code
	}
	return CodeUnknown
}

// Localize returns the user-facing message for err in locale. Errors without
// a code fall back to err.Error().
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}
	domainErr, ok := asError(err)
	if !ok {
		return err.Error()
	}
	return i18n.GetCatalog(locale).Format(string(domainErr.Code), domainErr.Metadata)
}

// HandleError converts err into a gRPC status error. Coded errors carry
// ErrorInfo and a LocalizedMessage; existing statuses pass through and
// anything else is Internal.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	if domainErr, ok := asError(err); ok {
		catalog := i18n.GetCatalog(locale)
		return domainErr.Status(catalog.Locale(), catalog.Format(string(domainErr.Code), domainErr.Metadata)).Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}

// Status builds the gRPC status for e. The status message stays the
// internal message; userMessage travels as a LocalizedMessage detail.
func (e *Error) Status(locale, userMessage string) *status.Status {
	base := status.New(e.Code.GRPCCode(), e.Message)
	withDetails, err := base.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: userMessage,
		},
	)
	if err != nil {
		return base
	}
	return withDetails
}

func asError(err error) (*Error, bool) {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// UserMessage returns the LocalizedMessage detail of a gRPC status error,
// or "" when err carries none.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, detail := range st.Details() {
		if msg, ok := detail.(*errdetails.LocalizedMessage); ok {
			return msg.GetMessage()
		}
	}
	return ""
}
