package storefront

import (
	"github.com/taskhive-io/taskhive-go/apierr"
	"github.com/taskhive-io/taskhive-go/transport"
)

// classify builds exactly one classified error from a non-2xx shop response.
// The shop API duplicates the HTTP status inside the envelope; the HTTP
// status is authoritative and the duplicate is ignored. The table is
// declared independently of the solver's: the two services are unrelated
// and their quota families differ (rate limiting here, prepaid credits
// there).
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
	switch code {
	case "AUTH_FAILED", "INVALID_TOKEN":
		return apierr.KindAuthentication
	case "RATE_LIMITED":
		return apierr.KindQuotaExceeded
	case "OUT_OF_STOCK", "INVENTORY_UNAVAILABLE":
		return apierr.KindInventoryUnavailable
	case "INVALID_REQUEST":
		return apierr.KindInvalidRequest
	case "UPSTREAM_ERROR", "STORE_UNAVAILABLE":
		return apierr.KindUpstreamService
	}

	switch statusCode {
	case 401, 403:
		return apierr.KindAuthentication
	case 429:
		return apierr.KindQuotaExceeded
	case 400, 422:
		return apierr.KindInvalidRequest
	case 409:
		return apierr.KindInventoryUnavailable
	case 502, 503, 504:
		return apierr.KindUpstreamService
	case 500:
		return apierr.KindInternalService
	}

	return apierr.KindUnclassified
}
