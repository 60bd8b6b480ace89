package logger

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()
	for _, mode := range []string{"development", "production", "prod", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("mode %q: %v", mode, err)
		}
		if log == nil || log.SugaredLogger == nil {
			t.Fatalf("mode %q: nil logger", mode)
		}
	}
}

func TestSanitizeValueRedactsSensitiveKeys(t *testing.T) {
	t.Parallel()

	redacted := []string{
		"api_key", "gemini_api_key", "tavily_apikey",
		"authorization", "password", "jwt_token", "client_secret",
		"user_medical_ailments", "medical_history", "report_content",
	}
	for _, key := range redacted {
		if got := sanitizeValue(key, "sensitive"); got != "[REDACTED]" {
			t.Fatalf("key %q: got %v", key, got)
		}
	}

	if got := sanitizeValue("filename", "scan.pdf"); got != "scan.pdf" {
		t.Fatalf("benign key altered: %v", got)
	}
}

func TestSanitizeValueHashesUserID(t *testing.T) {
	t.Parallel()

	got, ok := sanitizeValue("user_id", "user-1").(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("user_id not hashed: %v", got)
	}
	if strings.Contains(got, "user-1") {
		t.Fatalf("raw user id leaked: %v", got)
	}
	again, _ := sanitizeValue("user_id", "user-1").(string)
	if got != again {
		t.Fatal("hash must be stable for equal input")
	}
}

func TestHashValueEmpty(t *testing.T) {
	t.Parallel()
	if got := hashValue(""); got != "" {
		t.Fatalf("empty value should stay empty, got %q", got)
	}
}
