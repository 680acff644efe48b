package solver

// HealthStatus reports service liveness.
type HealthStatus struct {
	Status  string
	Version string
}

// OK reports whether the service considers itself healthy.
func (h *HealthStatus) OK() bool {
	return h.Status == "ok"
}

// TurnstileInput describes a Cloudflare Turnstile challenge.
// PageURL and SiteKey are required; Proxy, Action and CData are optional and
// omitted from the request entirely when empty.
type TurnstileInput struct {
	Proxy   string
	PageURL string
	SiteKey string
	Action  string
	CData   string
}

// TurnstileSolution is the normalized Turnstile solve payload.
type TurnstileSolution struct {
	Token     string
	UserAgent string
}

// TurnstileResult is the typed outcome of a Turnstile solve.
type TurnstileResult struct {
	TaskID    string
	Service   string
	Success   bool
	Cost      float64
	SolveTime float64
	Solution  TurnstileSolution
}

// KasadaInput describes a Kasada challenge. Proxy and ScriptURL (the p.js/
// ips.js script location) are required. HTTPMethod overrides the verb the
// solved headers will be used with and defaults to POST; the solve endpoint
// only signs GET and POST requests, so any other verb is rejected locally.
type KasadaInput struct {
	Proxy      string
	ScriptURL  string
	HTTPMethod string
}

// KasadaSolution carries the headers to replay against the protected site.
// UserAgent is extracted from the solution's User-Agent entry; every other
// header lands in Headers. Headers is nil when the solution contained no
// additional headers, so callers can distinguish "nothing extra" from an
// empty set.
type KasadaSolution struct {
	UserAgent string
	Headers   map[string]string
}

// KasadaResult is the typed outcome of a Kasada solve.
type KasadaResult struct {
	TaskID    string
	Service   string
	Success   bool
	Cost      float64
	SolveTime float64
	Solution  KasadaSolution
}

// AkamaiInput describes an Akamai Bot Manager challenge. Both fields are
// required.
type AkamaiInput struct {
	Proxy   string
	PageURL string
}

// AkamaiSolution holds the sensor cookies split out of the combined wire
// cookie blob: Abck from the _abck token and BmSz from the bm_sz token.
type AkamaiSolution struct {
	Abck      string
	BmSz      string
	UserAgent string
}

// AkamaiResult is the typed outcome of an Akamai solve.
type AkamaiResult struct {
	TaskID    string
	Service   string
	Success   bool
	Cost      float64
	SolveTime float64
	Solution  AkamaiSolution
}

// ArkoseInput describes an Arkose Labs challenge. Proxy, PageURL and
// PublicKey (the Arkose app id) are required; APIJSURL is optional for
// self-hosted api.js deployments.
type ArkoseInput struct {
	Proxy     string
	PageURL   string
	PublicKey string
	APIJSURL  string
}

// ArkoseSolution is the normalized Arkose solve payload.
type ArkoseSolution struct {
	Token     string
	UserAgent string
}

// ArkoseResult is the typed outcome of an Arkose solve.
type ArkoseResult struct {
	TaskID    string
	Service   string
	Success   bool
	Cost      float64
	SolveTime float64
	Solution  ArkoseSolution
}
