package credentials

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeCredsFile(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.toml")
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
	// WriteFile applies umask; force the mode.
	if err := os.Chmod(path, mode); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCredsFile(t, `
[llm]
api_key = "generic-key"

[openai]
api_key = "openai-key"
`, 0400)

	creds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := creds.GetAPIKey("openai"); got != "openai-key" {
		t.Errorf("expected provider-specific key, got %q", got)
	}
	if got := creds.GetAPIKey("anthropic"); got != "generic-key" {
		t.Errorf("expected fallback to [llm] key, got %q", got)
	}
}

func TestLoadFileInsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission check is Unix only")
	}

	path := writeCredsFile(t, `
[llm]
api_key = "generic-key"
`, 0644)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for world-readable credentials")
	}
}

func TestGetAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	var creds *Credentials
	if got := creds.GetAPIKey("openai"); got != "env-key" {
		t.Errorf("expected env fallback on nil credentials, got %q", got)
	}
}

func TestEnvVarForProvider(t *testing.T) {
	tests := []struct {
		provider string
		envVar   string
	}{
		{"openai", "OPENAI_API_KEY"},
		{"anthropic", "ANTHROPIC_API_KEY"},
		{"google", "GOOGLE_API_KEY"},
		{"some-provider", "SOME_PROVIDER_API_KEY"},
	}
	for _, tt := range tests {
		if got := envVarForProvider(tt.provider); got != tt.envVar {
			t.Errorf("%s: expected %s, got %s", tt.provider, tt.envVar, got)
		}
	}
}
