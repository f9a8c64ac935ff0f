package doctor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbright/mull/internal/config"
)

func TestReportOKAndString(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "one", Pass: true, Message: "good"},
		{Name: "two", Pass: false, Message: "bad"},
	}}

	require.False(t, report.OK())
	text := report.String()
	require.Contains(t, text, "[OK] one: good")
	require.Contains(t, text, "[FAIL] two: bad")
}

func TestReportOKAllPassing(t *testing.T) {
	report := Report{Checks: []Check{{Name: "one", Pass: true}, {Name: "two", Pass: true}}}
	require.True(t, report.OK())
}

func TestCheckEnv(t *testing.T) {
	t.Setenv("TEST_DOCTOR_ENV", "/run/user/1000")

	check := checkEnv(
		"TEST_DOCTOR_ENV",
		func(v string) bool { return strings.TrimSpace(v) != "" },
		"looks good",
		"unexpected",
	)

	require.True(t, check.Pass)
	require.Equal(t, "looks good", check.Message)
}

func TestCheckSecret(t *testing.T) {
	check := checkSecret("gateway.api_key", "abc", "MULL_GATEWAY_KEY")
	require.True(t, check.Pass)

	check = checkSecret("gateway.api_key", "  ", "MULL_GATEWAY_KEY")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "MULL_GATEWAY_KEY")
}

func TestCheckQuality(t *testing.T) {
	cfg := config.Default()
	check := checkQuality(cfg)
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "44100 Hz")

	cfg.Audio.Quality = "lossless"
	check = checkQuality(cfg)
	require.False(t, check.Pass)
}

func TestCheckGatewayReadySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("apikey"))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Gateway.URL = server.URL
	cfg.Gateway.APIKey = "test-key"

	check := checkGatewayReady(cfg)
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "HTTP 200")
}

func TestCheckGatewayReadyPassesOnAuthRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Gateway.URL = server.URL

	check := checkGatewayReady(cfg)
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "HTTP 401")
}

func TestCheckGatewayReadyFailureStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Gateway.URL = server.URL

	check := checkGatewayReady(cfg)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "HTTP 503")
}

func TestCheckGatewayReadyEmptyBaseURL(t *testing.T) {
	cfg := config.Default()
	cfg.Gateway.URL = ""

	check := checkGatewayReady(cfg)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "gateway.url is empty")
}

func TestCheckAudioSelectionFailureWithInvalidPulseServer(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")

	check := checkAudioSelection(config.Default())
	require.False(t, check.Pass)
	require.Contains(t, check.Name, "audio.device")
}
