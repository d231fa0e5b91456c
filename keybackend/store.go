// Package keybackend resolves the shared admin token from configuration.
package keybackend

// TokenConfig names where the admin token comes from.
type TokenConfig struct {
	Token string // Inline token from config, env or flag
	File  string // Path to a file holding the token
}

// ResolveToken returns the admin token. The file takes precedence over the
// inline value when both are set. An empty result is valid and means every
// admin request is rejected.
func ResolveToken(cfg TokenConfig) (string, error) {
	if cfg.File != "" {
		return LoadTokenFromFile(cfg.File)
	}
	return cfg.Token, nil
}
