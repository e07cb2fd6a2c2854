package infra

import (
	"errors"
	"log/slog"

	"hotel-reservation/internal/pkg/errs"
)

type UpstreamErrorKind string

// UpstreamError describes a failed call to the booking API. Message carries
// the server-provided text when there is one.
type UpstreamError struct {
	Kind    UpstreamErrorKind
	Status  int
	Message string
	msg     string
	err     error // wrapped low-level error
}

func (e UpstreamError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e UpstreamError) Unwrap() error {
	return e.err
}

func WrapUpstreamErr(slogger *slog.Logger, kind UpstreamErrorKind, status int, message, msg string, err error) error {
	slogger.Error("Upstream error: "+msg,
		slog.String("kind", string(kind)),
		slog.Int("status", status),
		slog.String("message", message),
	)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return UpstreamError{Kind: kind, Status: status, Message: message, msg: msg, err: err}
}

func IsKind(err error, kind UpstreamErrorKind) bool {
	var e UpstreamError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ServerMessage returns the booking API's own message, if err carries one.
func ServerMessage(err error) string {
	var e UpstreamError
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

const (
	KindNotFound        UpstreamErrorKind = "NOT_FOUND"
	KindUpstreamFailure UpstreamErrorKind = "UPSTREAM_FAILURE"
	KindBadResponse     UpstreamErrorKind = "BAD_RESPONSE"
	KindRejected        UpstreamErrorKind = "REJECTED"
)
