// Package auth contains the credential plumbing for the authentication
// pipeline: decoding Basic credentials and extracting bearer tokens from
// Authorization header values.
package auth

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// Scheme prefixes are case-sensitive literals; anything else is treated as
// part of the payload.
const (
	basicPrefix  = "Basic "
	bearerPrefix = "Bearer "
)

// DecodeBasic parses an Authorization header value carrying a Basic
// credential. The "Basic " prefix is optional; the remainder must be
// base64 text of the form "email:secret". The split happens at the first
// colon so secrets containing colons stay intact. A payload without a
// colon is rejected as malformed rather than read as an empty secret.
func DecodeBasic(headerValue string) (email, secret string, err error) {
	encoded := strings.TrimSpace(strings.TrimPrefix(headerValue, basicPrefix))

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid base64", common.ErrMalformedCredential)
	}

	idx := strings.Index(string(decoded), ":")
	if idx < 0 {
		return "", "", fmt.Errorf("%w: no separator", common.ErrMalformedCredential)
	}

	return string(decoded[:idx]), string(decoded[idx+1:]), nil
}

// ExtractBearer returns the token portion of an Authorization header
// value, stripping the "Bearer " prefix if present.
func ExtractBearer(headerValue string) string {
	return strings.TrimSpace(strings.TrimPrefix(headerValue, bearerPrefix))
}
