package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"guardianclima/internal/model"
)

// AccessTokenExpiry is the duration for which access tokens are valid.
const AccessTokenExpiry = time.Hour

// Claims carries the user identity plus a snapshot of the entitlement
// state (plan, preferences flag, usage counters) taken at issue time.
// The snapshot goes stale the moment the user row changes: every code
// path that mutates plan, preferences or a usage counter must reissue
// the token through IssueForUser and hand the new token to the client.
type Claims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	Plan         string `json:"plan"`
	PrefsSaved   bool   `json:"prefs_saved"`
	AIOutfitUses int    `json:"ai_outfit_uses"`
	AITravelUses int    `json:"ai_travel_uses"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// IssueForUser mints an access token whose claims mirror the user row as
// it stands right now. It is the single issue point shared by login and
// by every mutating handler.
func (s *JWTService) IssueForUser(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:       user.ID,
		Username:     user.Username,
		Plan:         user.Plan,
		PrefsSaved:   user.PrefsSaved,
		AIOutfitUses: user.AIOutfitUses,
		AITravelUses: user.AITravelUses,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
