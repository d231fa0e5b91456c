package stowgate

import "crypto/subtle"

// TokenMatches reports whether presented equals the configured secret. An
// empty secret never matches, so an unconfigured gateway authorizes nobody.
func TokenMatches(presented, secret string) bool {
	if secret == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1
}
