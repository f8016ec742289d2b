package planner

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind is the closed taxonomy every upstream failure is mapped into.
// No call site invents its own error text; everything routes through
// Classify and the canned message table below.
type ErrorKind string

const (
	KindInvalidRequest     ErrorKind = "invalid_request"
	KindPermissionDenied   ErrorKind = "permission_denied"
	KindRateLimited        ErrorKind = "rate_limited"
	KindServerError        ErrorKind = "server_error"
	KindNetworkUnavailable ErrorKind = "network_unavailable"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindUnknown            ErrorKind = "unknown"
)

// userMessages maps each kind to exactly one canned, user-safe message.
var userMessages = map[ErrorKind]string{
	KindInvalidRequest:     "Sorry, I couldn't understand that request. Could you rephrase it?",
	KindPermissionDenied:   "That action isn't available for your account.",
	KindRateLimited:        "I'm handling a lot of requests right now. Please try again in a moment.",
	KindServerError:        "Something went wrong on our side. Please try again shortly.",
	KindNetworkUnavailable: "I couldn't reach the travel services. Check your connection and try again.",
	KindInvalidCredentials: "The service credentials are invalid. Please contact support.",
	KindUnknown:            "Something unexpected happened. Please try again.",
}

// PlannerError carries a classified kind, its canned user-safe message and
// the underlying cause.
type PlannerError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *PlannerError) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *PlannerError) Unwrap() error {
	return e.cause
}

func newPlannerError(kind ErrorKind, cause error) *PlannerError {
	return &PlannerError{Kind: kind, Message: userMessages[kind], cause: cause}
}

// newParseError marks a non-conforming model response: surfaced to the user
// as "request not understood" with no partial params returned.
func newParseError(cause error) *PlannerError {
	return newPlannerError(KindInvalidRequest, cause)
}

// ProviderHTTPError is how search provider clients report a non-2xx
// response; Classify folds it into the taxonomy by status code.
type ProviderHTTPError struct {
	Provider   string
	StatusCode int
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("%s provider returned status %d", e.Provider, e.StatusCode)
}

// Classify maps any caught error (network, upstream AI, provider) into the
// taxonomy. Already-classified errors pass through unchanged.
func Classify(err error) *PlannerError {
	if err == nil {
		return nil
	}

	var pe *PlannerError
	if errors.As(err, &pe) {
		return pe
	}

	var phe *ProviderHTTPError
	if errors.As(err, &phe) {
		return newPlannerError(kindFromHTTPStatus(phe.StatusCode), err)
	}

	// Timeouts and unreachable hosts.
	if errors.Is(err, context.DeadlineExceeded) {
		return newPlannerError(KindNetworkUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return newPlannerError(KindNetworkUnavailable, err)
	}

	// HTTP-level errors from the Google API transport.
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return newPlannerError(kindFromHTTPStatus(gerr.Code), err)
	}

	// gRPC status codes surfaced by the Gemini SDK.
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown && st.Code() != codes.OK {
		return newPlannerError(kindFromGRPCCode(st.Code()), err)
	}

	return newPlannerError(KindUnknown, err)
}

func kindFromHTTPStatus(code int) ErrorKind {
	switch {
	case code == 400 || code == 404 || code == 422:
		return KindInvalidRequest
	case code == 401:
		return KindInvalidCredentials
	case code == 403:
		return KindPermissionDenied
	case code == 429:
		return KindRateLimited
	case code >= 500:
		return KindServerError
	default:
		return KindUnknown
	}
}

func kindFromGRPCCode(code codes.Code) ErrorKind {
	switch code {
	case codes.InvalidArgument, codes.NotFound:
		return KindInvalidRequest
	case codes.Unauthenticated:
		return KindInvalidCredentials
	case codes.PermissionDenied:
		return KindPermissionDenied
	case codes.ResourceExhausted:
		return KindRateLimited
	case codes.Internal, codes.Unimplemented, codes.DataLoss:
		return KindServerError
	case codes.Unavailable, codes.DeadlineExceeded:
		return KindNetworkUnavailable
	default:
		return KindUnknown
	}
}
