// Package doctor runs runtime readiness diagnostics for config, environment,
// audio, and the remote gateway.
package doctor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rbright/mull/internal/audio"
	"github.com/rbright/mull/internal/config"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(cfg config.Loaded) Report {
	checks := []Check{}

	checks = append(checks, Check{
		Name:    "config",
		Pass:    true,
		Message: fmt.Sprintf("loaded %q", cfg.Path),
	})
	for _, warning := range cfg.Warnings {
		checks = append(checks, Check{Name: "config", Pass: false, Message: warning.Message})
	}

	checks = append(checks, checkEnv("XDG_RUNTIME_DIR", func(v string) bool {
		return strings.TrimSpace(v) != ""
	}, "runtime dir available for control socket", "XDG_RUNTIME_DIR is empty"))

	checks = append(checks, checkSecret("gateway.api_key", cfg.Config.Gateway.APIKey, "MULL_GATEWAY_KEY"))
	checks = append(checks, checkSecret("synthesis.api_key", cfg.Config.Synthesis.APIKey, "GEMINI_API_KEY"))

	checks = append(checks, checkQuality(cfg.Config))
	checks = append(checks, checkAudioSelection(cfg.Config))
	checks = append(checks, checkGatewayReady(cfg.Config))

	return Report{Checks: checks}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkSecret validates that a credential arrived via config or environment.
func checkSecret(name, value, envName string) Check {
	if strings.TrimSpace(value) != "" {
		return Check{Name: name, Pass: true, Message: "credential is set"}
	}
	return Check{Name: name, Pass: false, Message: fmt.Sprintf("empty; set it in config or export %s", envName)}
}

// checkQuality validates that the configured capture profile exists.
func checkQuality(cfg config.Config) Check {
	profile, err := audio.ProfileByName(cfg.Audio.Quality)
	if err != nil {
		return Check{Name: "audio.quality", Pass: false, Message: err.Error()}
	}
	return Check{
		Name: "audio.quality",
		Pass: true,
		Message: fmt.Sprintf("%s (%d Hz, %d ch, %d kbps)",
			profile.Name, profile.SampleRate, profile.Channels, profile.BitRateKbps),
	}
}

// checkAudioSelection runs live device selection to surface selection/fallback issues.
func checkAudioSelection(cfg config.Config) Check {
	device, err := audio.SelectDevice(context.Background(), cfg.Audio.Input)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	return Check{Name: "audio.device", Pass: true, Message: fmt.Sprintf("selected %q", device.ID)}
}

// checkGatewayReady probes the gateway's REST root. Any HTTP answer below 500
// proves the service is up; auth problems surface on the first real call.
func checkGatewayReady(cfg config.Config) Check {
	base := strings.TrimSpace(cfg.Gateway.URL)
	if base == "" {
		return Check{Name: "gateway.ready", Pass: false, Message: "gateway.url is empty"}
	}

	url := strings.TrimRight(base, "/") + "/rest/v1/"
	client := http.Client{Timeout: 2 * time.Second}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return Check{Name: "gateway.ready", Pass: false, Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("apikey", cfg.Gateway.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return Check{Name: "gateway.ready", Pass: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Check{Name: "gateway.ready", Pass: false, Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url)}
	}
	return Check{Name: "gateway.ready", Pass: true, Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url)}
}
