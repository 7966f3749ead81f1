package integration

import (
	"fmt"
	"strings"
	"time"
)

// TestUser generates unique test user credentials using a timestamp
func TestUser(suffix string) (email, name, password string) {
	ts := time.Now().UnixNano()
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	name = "Usuario " + suffix
	password = "TestPassword123!"
	return
}

// ExtractSecretFromEmail pulls the generated password out of the plain-text
// body of a rotation notification.
func ExtractSecretFromEmail(textBody string) string {
	const marker = "Tu nueva contraseña es: "
	idx := strings.Index(textBody, marker)
	if idx < 0 {
		return ""
	}
	rest := textBody[idx+len(marker):]
	if end := strings.IndexAny(rest, "\r\n"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
