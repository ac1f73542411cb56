package syslognames

import "testing"

func TestShortName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"LOG_USER", "user"},
		{"LOG_LOCAL0", "local0"},
		{"LOG_AUTHPRIV", "authpriv"},
		{"LOG_ERR", "err"},
		{"LOG_WARNING", "warning"},
		{"LOG_EMERG", "emerg"},
	}

	for _, tt := range tests {
		got, err := ShortName(tt.name)
		if err != nil {
			t.Fatalf("ShortName(%q) failed: %v", tt.name, err)
		}
		if got != tt.expected {
			t.Fatalf("ShortName(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestShortNameUnknown(t *testing.T) {
	for _, name := range []string{"LOG_BOGUS", "log_user", "user", ""} {
		if _, err := ShortName(name); err == nil {
			t.Fatalf("ShortName(%q) should fail", name)
		}
	}
}
