package solver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taskhive-io/taskhive-go/apierr"
)

// Wire request shapes. The API uses underscore-separated keys on requests;
// optional fields carry omitempty so an absent input never serializes as an
// empty string (the service distinguishes absent from empty).

type turnstileRequest struct {
	Proxy   string `json:"proxy,omitempty"`
	PageURL string `json:"page_url"`
	SiteKey string `json:"site_key"`
	Action  string `json:"action,omitempty"`
	CData   string `json:"cdata,omitempty"`
}

func buildTurnstileRequest(in TurnstileInput) (*turnstileRequest, error) {
	if in.PageURL == "" {
		return nil, apierr.InvalidRequest("page URL is required")
	}
	if in.SiteKey == "" {
		return nil, apierr.InvalidRequest("site key is required")
	}
	return &turnstileRequest{
		Proxy:   in.Proxy,
		PageURL: in.PageURL,
		SiteKey: in.SiteKey,
		Action:  in.Action,
		CData:   in.CData,
	}, nil
}

func (r *turnstileRequest) asInput() TurnstileInput {
	return TurnstileInput{
		Proxy:   r.Proxy,
		PageURL: r.PageURL,
		SiteKey: r.SiteKey,
		Action:  r.Action,
		CData:   r.CData,
	}
}

type kasadaRequest struct {
	Proxy      string `json:"proxy"`
	ScriptURL  string `json:"script_url"`
	HTTPMethod string `json:"http_method"`
}

func buildKasadaRequest(in KasadaInput) (*kasadaRequest, error) {
	if in.Proxy == "" {
		return nil, apierr.InvalidRequest("proxy is required")
	}
	if in.ScriptURL == "" {
		return nil, apierr.InvalidRequest("script URL is required")
	}
	// The method default is applied here, before serialization, so the wire
	// request is deterministic regardless of what the service would assume.
	method := strings.ToUpper(in.HTTPMethod)
	if method == "" {
		method = http.MethodPost
	}
	if method != http.MethodGet && method != http.MethodPost {
		return nil, apierr.InvalidRequest("http method must be GET or POST")
	}
	return &kasadaRequest{
		Proxy:      in.Proxy,
		ScriptURL:  in.ScriptURL,
		HTTPMethod: method,
	}, nil
}

func (r *kasadaRequest) asInput() KasadaInput {
	return KasadaInput{
		Proxy:      r.Proxy,
		ScriptURL:  r.ScriptURL,
		HTTPMethod: r.HTTPMethod,
	}
}

type akamaiRequest struct {
	Proxy   string `json:"proxy"`
	PageURL string `json:"page_url"`
}

func buildAkamaiRequest(in AkamaiInput) (*akamaiRequest, error) {
	if in.Proxy == "" {
		return nil, apierr.InvalidRequest("proxy is required")
	}
	if in.PageURL == "" {
		return nil, apierr.InvalidRequest("page URL is required")
	}
	return &akamaiRequest{Proxy: in.Proxy, PageURL: in.PageURL}, nil
}

func (r *akamaiRequest) asInput() AkamaiInput {
	return AkamaiInput{Proxy: r.Proxy, PageURL: r.PageURL}
}

type arkoseRequest struct {
	Proxy     string `json:"proxy"`
	PageURL   string `json:"page_url"`
	PublicKey string `json:"public_key"`
	APIJSURL  string `json:"api_js_url,omitempty"`
}

func buildArkoseRequest(in ArkoseInput) (*arkoseRequest, error) {
	if in.Proxy == "" {
		return nil, apierr.InvalidRequest("proxy is required")
	}
	if in.PageURL == "" {
		return nil, apierr.InvalidRequest("page URL is required")
	}
	if in.PublicKey == "" {
		return nil, apierr.InvalidRequest("public key is required")
	}
	return &arkoseRequest{
		Proxy:     in.Proxy,
		PageURL:   in.PageURL,
		PublicKey: in.PublicKey,
		APIJSURL:  in.APIJSURL,
	}, nil
}

func (r *arkoseRequest) asInput() ArkoseInput {
	return ArkoseInput{
		Proxy:     r.Proxy,
		PageURL:   r.PageURL,
		PublicKey: r.PublicKey,
		APIJSURL:  r.APIJSURL,
	}
}

// solveEnvelope is the common wire shape of every solve response. Solution
// is held raw because its shape differs per task type. Oddly, solve
// responses use camelCase keys even though requests use underscores.
type solveEnvelope struct {
	Success   bool            `json:"success"`
	TaskID    string          `json:"taskId"`
	Service   string          `json:"service"`
	Cost      float64         `json:"cost"`
	SolveTime float64         `json:"solveTime"`
	Solution  json.RawMessage `json:"solution"`
}

func decodeSolveEnvelope(raw json.RawMessage) (*solveEnvelope, error) {
	var env solveEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}
	if len(env.Solution) == 0 {
		env.Solution = json.RawMessage("{}")
	}
	return &env, nil
}

type turnstileWireSolution struct {
	Token string `json:"token"`
	UA    string `json:"ua"`
}

func mapTurnstileResult(raw json.RawMessage) (*TurnstileResult, error) {
	env, err := decodeSolveEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var sol turnstileWireSolution
	if err := json.Unmarshal(env.Solution, &sol); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}
	return &TurnstileResult{
		TaskID:    env.TaskID,
		Service:   env.Service,
		Success:   env.Success,
		Cost:      env.Cost,
		SolveTime: env.SolveTime,
		Solution: TurnstileSolution{
			Token:     sol.Token,
			UserAgent: sol.UA,
		},
	}, nil
}

// mapKasadaSolution splits an open-ended header map into the statically
// known User-Agent field and the remainder. The remainder is nil, not an
// empty map, when only known keys were present.
func mapKasadaSolution(raw json.RawMessage) (KasadaSolution, error) {
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return KasadaSolution{}, apierr.Transport("unexpected response shape", err)
	}

	var sol KasadaSolution
	rest := make(map[string]string, len(fields))
	for k, v := range fields {
		if strings.EqualFold(k, "user-agent") {
			sol.UserAgent = v
			continue
		}
		rest[k] = v
	}
	if len(rest) > 0 {
		sol.Headers = rest
	}
	return sol, nil
}

func mapKasadaResult(raw json.RawMessage) (*KasadaResult, error) {
	env, err := decodeSolveEnvelope(raw)
	if err != nil {
		return nil, err
	}
	sol, err := mapKasadaSolution(env.Solution)
	if err != nil {
		return nil, err
	}
	return &KasadaResult{
		TaskID:    env.TaskID,
		Service:   env.Service,
		Success:   env.Success,
		Cost:      env.Cost,
		SolveTime: env.SolveTime,
		Solution:  sol,
	}, nil
}

type akamaiWireSolution struct {
	Cookie string `json:"cookie"`
	UA     string `json:"ua"`
}

// splitSensorCookie picks the _abck and bm_sz tokens out of the combined
// cookie blob the API returns ("_abck=...; bm_sz=...").
func splitSensorCookie(blob string) (abck, bmSz string) {
	for _, part := range strings.Split(blob, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch name {
		case "_abck":
			abck = value
		case "bm_sz":
			bmSz = value
		}
	}
	return abck, bmSz
}

func mapAkamaiResult(raw json.RawMessage) (*AkamaiResult, error) {
	env, err := decodeSolveEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var sol akamaiWireSolution
	if err := json.Unmarshal(env.Solution, &sol); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}
	abck, bmSz := splitSensorCookie(sol.Cookie)
	return &AkamaiResult{
		TaskID:    env.TaskID,
		Service:   env.Service,
		Success:   env.Success,
		Cost:      env.Cost,
		SolveTime: env.SolveTime,
		Solution: AkamaiSolution{
			Abck:      abck,
			BmSz:      bmSz,
			UserAgent: sol.UA,
		},
	}, nil
}

type arkoseWireSolution struct {
	Token string `json:"token"`
	UA    string `json:"ua"`
}

func mapArkoseResult(raw json.RawMessage) (*ArkoseResult, error) {
	env, err := decodeSolveEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var sol arkoseWireSolution
	if err := json.Unmarshal(env.Solution, &sol); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}
	return &ArkoseResult{
		TaskID:    env.TaskID,
		Service:   env.Service,
		Success:   env.Success,
		Cost:      env.Cost,
		SolveTime: env.SolveTime,
		Solution: ArkoseSolution{
			Token:     sol.Token,
			UserAgent: sol.UA,
		},
	}, nil
}

type healthWire struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func mapHealthStatus(raw json.RawMessage) (*HealthStatus, error) {
	var wire healthWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apierr.Transport("unexpected response shape", err)
	}
	return &HealthStatus{Status: wire.Status, Version: wire.Version}, nil
}
