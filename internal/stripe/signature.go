package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks a Stripe webhook payload against the
// stripe-signature header. The header carries a timestamp and one or more
// v1 signatures: each v1 candidate is compared (constant time) against
// HMAC-SHA256(secret, "{t}.{payload}"). Acceptance depends only on a
// matching signature, not on timestamp freshness.
func VerifySignature(payload []byte, header, secret string) bool {
	if header == "" || secret == "" {
		return false
	}

	var timestamp string
	var candidates []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			candidates = append(candidates, kv[1])
		}
	}

	if timestamp == "" || len(candidates) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return true
		}
	}

	return false
}
