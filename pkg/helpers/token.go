package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"net/url"
	"strings"
)

// OneTimeTokenBytes is the amount of randomness behind verification and reset tokens.
const OneTimeTokenBytes = 32

// GenOneTimeToken returns a hex encoded random token used for email
// verification and password reset links.
func GenOneTimeToken() (string, error) {
	b := make([]byte, OneTimeTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NormalizeToken trims whitespace and undoes one level of percent-encoding
// that mail clients or proxies sometimes add to links.
func NormalizeToken(raw string) string {
	tok := strings.TrimSpace(raw)
	if decoded, err := url.PathUnescape(tok); err == nil && decoded != tok {
		return decoded
	}
	return tok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}
