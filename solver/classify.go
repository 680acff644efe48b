package solver

import (
	"github.com/taskhive-io/taskhive-go/apierr"
	"github.com/taskhive-io/taskhive-go/transport"
)

// classify builds exactly one classified error from a non-2xx solve
// response. The kind is a function of (status code, machine code) only, so
// the same pair always yields the same kind.
func classify(statusCode int, env transport.ErrorEnvelope) *apierr.Error {
	err := apierr.New(classifyKind(statusCode, env.Error.Code), statusCode, env.Error.Code, env.ErrorMessage())
	if env.Error.Details != "" {
		err.WithDetails(env.Error.Details)
	}
	if env.Error.Suggestion != "" {
		err.WithSuggestion(env.Error.Suggestion)
	}
	return err
}

func classifyKind(statusCode int, code string) apierr.Kind {
	// The machine code is more specific than the status and wins when
	// recognized.
	switch code {
	case "AUTH_FAILED", "INVALID_API_KEY":
		return apierr.KindAuthentication
	case "INSUFFICIENT_CREDITS":
		return apierr.KindQuotaExceeded
	case "INVALID_REQUEST", "VALIDATION_ERROR":
		return apierr.KindInvalidRequest
	case "SITE_UNREACHABLE", "UPSTREAM_ERROR":
		return apierr.KindUpstreamService
	case "SOLVE_FAILED", "CHALLENGE_FAILED":
		return apierr.KindSolveFailed
	}

	switch statusCode {
	case 401, 403:
		return apierr.KindAuthentication
	case 402:
		return apierr.KindQuotaExceeded
	case 400, 422:
		return apierr.KindInvalidRequest
	case 502, 503, 504:
		return apierr.KindUpstreamService
	case 500:
		return apierr.KindInternalService
	}

	return apierr.KindUnclassified
}
