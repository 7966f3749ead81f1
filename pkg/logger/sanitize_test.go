package logger

import "testing"

func TestSanitizedEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"carlos@example.com", "c*****@*******.com"},
		{"a@x.com", "a@*.com"},
		{"not-an-email", "[invalid-email]"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := SanitizedEmail(tt.email); got != tt.want {
				t.Errorf("SanitizedEmail(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestSanitizeQueryString(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"email=a@x.com", true},
		{"password=hunter2", true},
		{"limit=10&offset=0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := SanitizeQueryString(tt.query); got != tt.want {
				t.Errorf("SanitizeQueryString(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
