package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// UserIDFromToken extracts the user id from a Codify JWT without verifying
// the signature. The backend remains the authority on authorization; the id
// is only used client-side to mark the user's own replies and gate the
// edit/delete affordances.
func UserIDFromToken(token string) (string, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("token is not a JWT")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// Some issuers pad the payload segment.
		payload, err = base64.URLEncoding.DecodeString(parts[1])
		if err != nil {
			return "", fmt.Errorf("decoding token payload: %w", err)
		}
	}

	var claims struct {
		ID  string `json:"id"`
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("parsing token claims: %w", err)
	}

	if claims.ID != "" {
		return claims.ID, nil
	}
	if claims.Sub != "" {
		return claims.Sub, nil
	}
	return "", fmt.Errorf("token carries no user id")
}
