package solver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive-io/taskhive-go/apierr"
)

func TestTurnstileRequestRoundTrip(t *testing.T) {
	in := TurnstileInput{
		Proxy:   "http://10.0.0.1:8080",
		PageURL: "https://example.com",
		SiteKey: "0x4AAA",
		Action:  "login",
		CData:   "blob",
	}

	req, err := buildTurnstileRequest(in)
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var back turnstileRequest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, in, back.asInput())
}

func TestTurnstileRequestOmitsAbsentFields(t *testing.T) {
	req, err := buildTurnstileRequest(TurnstileInput{
		PageURL: "https://example.com",
		SiteKey: "0x4AAA",
	})
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Equal(t, map[string]any{
		"page_url": "https://example.com",
		"site_key": "0x4AAA",
	}, keys)
}

func TestKasadaRequestDefaultsMethod(t *testing.T) {
	req, err := buildKasadaRequest(KasadaInput{
		Proxy:     "http://10.0.0.1:8080",
		ScriptURL: "https://example.com/ips.js",
	})
	require.NoError(t, err)
	assert.Equal(t, "POST", req.HTTPMethod)

	req, err = buildKasadaRequest(KasadaInput{
		Proxy:      "http://10.0.0.1:8080",
		ScriptURL:  "https://example.com/ips.js",
		HTTPMethod: "get",
	})
	require.NoError(t, err)
	assert.Equal(t, "GET", req.HTTPMethod)

	_, err = buildKasadaRequest(KasadaInput{
		Proxy:      "http://10.0.0.1:8080",
		ScriptURL:  "https://example.com/ips.js",
		HTTPMethod: "DELETE",
	})
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsInvalidRequest())
}

func TestKasadaRequestRoundTrip(t *testing.T) {
	in := KasadaInput{
		Proxy:      "http://10.0.0.1:8080",
		ScriptURL:  "https://example.com/ips.js",
		HTTPMethod: "GET",
	}

	req, err := buildKasadaRequest(in)
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var back kasadaRequest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, in, back.asInput())
}

func TestAkamaiRequestRoundTrip(t *testing.T) {
	in := AkamaiInput{Proxy: "http://10.0.0.1:8080", PageURL: "https://example.com"}

	req, err := buildAkamaiRequest(in)
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var back akamaiRequest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, in, back.asInput())
}

func TestArkoseRequestRoundTrip(t *testing.T) {
	in := ArkoseInput{
		Proxy:     "http://10.0.0.1:8080",
		PageURL:   "https://example.com",
		PublicKey: "pk",
		APIJSURL:  "https://cdn.example.com/api.js",
	}

	req, err := buildArkoseRequest(in)
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var back arkoseRequest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, in, back.asInput())
}

func TestBuildRequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
	}{
		{"turnstile missing page url", func() error {
			_, err := buildTurnstileRequest(TurnstileInput{SiteKey: "k"})
			return err
		}},
		{"turnstile missing site key", func() error {
			_, err := buildTurnstileRequest(TurnstileInput{PageURL: "https://example.com"})
			return err
		}},
		{"kasada missing proxy", func() error {
			_, err := buildKasadaRequest(KasadaInput{ScriptURL: "https://example.com/ips.js"})
			return err
		}},
		{"kasada missing script url", func() error {
			_, err := buildKasadaRequest(KasadaInput{Proxy: "http://10.0.0.1:8080"})
			return err
		}},
		{"akamai missing proxy", func() error {
			_, err := buildAkamaiRequest(AkamaiInput{PageURL: "https://example.com"})
			return err
		}},
		{"arkose missing public key", func() error {
			_, err := buildArkoseRequest(ArkoseInput{Proxy: "p", PageURL: "https://example.com"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *apierr.Error
			require.ErrorAs(t, tt.build(), &apiErr)
			assert.True(t, apiErr.IsInvalidRequest())
		})
	}
}

func TestSplitSensorCookie(t *testing.T) {
	tests := []struct {
		name     string
		blob     string
		wantAbck string
		wantBmSz string
	}{
		{"both tokens", "_abck=A1~0~B2; bm_sz=C3", "A1~0~B2", "C3"},
		{"reversed order", "bm_sz=C3;_abck=A1", "A1", "C3"},
		{"abck only", "_abck=A1", "A1", ""},
		{"unknown tokens ignored", "foo=bar; _abck=A1; baz=qux", "A1", ""},
		{"empty blob", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abck, bmSz := splitSensorCookie(tt.blob)
			assert.Equal(t, tt.wantAbck, abck)
			assert.Equal(t, tt.wantBmSz, bmSz)
		})
	}
}

func TestMapKasadaSolutionLowercaseUserAgent(t *testing.T) {
	sol, err := mapKasadaSolution(json.RawMessage(`{"user-agent":"UA","x-kpsdk-ct":"ct"}`))
	require.NoError(t, err)
	assert.Equal(t, "UA", sol.UserAgent)
	assert.Equal(t, map[string]string{"x-kpsdk-ct": "ct"}, sol.Headers)
}

func TestDecodeSolveEnvelopeMissingSolution(t *testing.T) {
	env, err := decodeSolveEnvelope(json.RawMessage(`{"success":true,"taskId":"t1"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(env.Solution))
}

func TestMapTurnstileResultBadShape(t *testing.T) {
	_, err := mapTurnstileResult(json.RawMessage(`[1,2,3]`))
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsTransport())
}
