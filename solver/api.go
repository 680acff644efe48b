package solver

import (
	"context"
)

// API defines the interface for TaskHive solve operations
type API interface {
	// Health reports service liveness
	Health(ctx context.Context) (*HealthStatus, error)

	// SolveTurnstile solves a Cloudflare Turnstile challenge
	SolveTurnstile(ctx context.Context, input TurnstileInput) (*TurnstileResult, error)

	// SolveKasada solves a Kasada challenge and returns the required headers
	SolveKasada(ctx context.Context, input KasadaInput) (*KasadaResult, error)

	// SolveAkamai generates Akamai sensor cookies for a page
	SolveAkamai(ctx context.Context, input AkamaiInput) (*AkamaiResult, error)

	// SolveArkose solves an Arkose Labs (FunCaptcha) challenge
	SolveArkose(ctx context.Context, input ArkoseInput) (*ArkoseResult, error)
}
