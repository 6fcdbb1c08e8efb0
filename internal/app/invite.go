package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// DefaultInviteTTL bounds how long an invite token stays redeemable.
const DefaultInviteTTL = 24 * time.Hour

// InviteService issues and verifies signed invite tokens for private
// matches. A token binds a match id to the inviting player so a friend can
// join without the match being advertised to the matchmaker.
type InviteService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// NewInviteService constructs an invite service. ttl <= 0 uses the default.
func NewInviteService(secret, issuer string, ttl time.Duration) *InviteService {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	return &InviteService{secret: secret, issuer: issuer, ttl: ttl}
}

// CreateToken signs an invite for the given match on behalf of hostID.
func (s *InviteService) CreateToken(matchID, hostID string) (string, error) {
	if s == nil || s.secret == "" {
		return "", fmt.Errorf("invite service is not configured")
	}
	if matchID == "" || hostID == "" {
		return "", fmt.Errorf("match id and host id are required")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": hostID,
		"mid": matchID,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify checks the token signature and expiry and returns the match id.
func (s *InviteService) Verify(tokenString string) (string, error) {
	if s == nil || s.secret == "" {
		return "", fmt.Errorf("invite service is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid invite token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid invite claims")
	}
	matchID, ok := claims["mid"].(string)
	if !ok || matchID == "" {
		return "", fmt.Errorf("invite token missing match id")
	}
	return matchID, nil
}
