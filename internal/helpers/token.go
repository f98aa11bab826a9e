package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoVerificationKey = errors.New("no verification key for token algorithm")

type TokenVerifier struct {
	secret []byte
	jwks   *keyfunc.JWKS
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// NewTokenVerifierWithJWKS also accepts asymmetric tokens whose keys are
// published at jwksURL. Keys are refreshed in the background until Close or
// until ctx is done, so ctx must not be a short-lived startup context.
func NewTokenVerifierWithJWKS(ctx context.Context, secret, jwksURL string) (*TokenVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return &TokenVerifier{secret: []byte(secret), jwks: jwks}, nil
}

func (v *TokenVerifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func (v *TokenVerifier) keyFor(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); ok {
		if len(v.secret) == 0 {
			return nil, ErrNoVerificationKey
		}
		return v.secret, nil
	}
	if v.jwks != nil {
		return v.jwks.Keyfunc(t)
	}
	return nil, ErrNoVerificationKey
}

func (v *TokenVerifier) validMethods() []string {
	methods := []string{"HS256", "HS384", "HS512"}
	if v.jwks != nil {
		methods = append(methods, "RS256", "RS384", "RS512", "ES256", "ES384", "ES512", "PS256", "EdDSA")
	}
	return methods
}

// Decode verifies tokenStr and extracts the caller identity from its claims.
func (v *TokenVerifier) Decode(tokenStr string) IdentityResult {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, v.keyFor, jwt.WithValidMethods(v.validMethods()))
	if err != nil {
		return IdentityResult{Status: TokenInvalid, Err: err}
	}
	if !token.Valid {
		return IdentityResult{Status: TokenInvalid, Err: errors.New("invalid or expired token")}
	}
	return IdentityFromClaims(claims)
}

// IdentityFromClaims applies the field precedence sub > email > emailAddress,
// taking the first claim that is a non-blank string.
func IdentityFromClaims(claims map[string]interface{}) IdentityResult {
	for _, field := range identityFields {
		s, ok := claims[field].(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return IdentityResult{Status: IdentityFound, Identity: s, Field: field}
		}
	}
	return IdentityResult{Status: IdentityAbsent, Err: errors.New("no identity claim in token")}
}
