package copilot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/transport"
)

type jwtContextKey struct{}
type jwtTokenContextKey struct{}

// GetJWTClaims returns the verified JWT claims stored on the request context
// by JWTAuthenticator.
func GetJWTClaims(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(jwtContextKey{}).(jwt.MapClaims)
	return claims, ok
}

// GetJWTToken returns the raw bearer token stored on the request context.
func GetJWTToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(jwtTokenContextKey{}).(string)
	return token, ok
}

// GetJWTSubject returns the sub claim of the verified token.
func GetJWTSubject(ctx context.Context) (string, bool) {
	claims, ok := GetJWTClaims(ctx)
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	return sub, ok
}

// StaticAPIKeyAuthenticator accepts requests carrying a fixed API key in a
// header. Suitable for single-tenant deployments where one caller owns the
// endpoint; rotate by redeploying with a new key.
type StaticAPIKeyAuthenticator struct {
	APIKey     string
	HeaderName string // defaults to X-API-Key
}

// Authenticate implements transport.Authenticator.
func (s StaticAPIKeyAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*http.Request, error) {
	headerName := s.HeaderName
	if headerName == "" {
		headerName = "X-API-Key"
	}

	apiKey := r.Header.Get(headerName)
	if apiKey == "" {
		return nil, transport.NewAuthErrorWithScheme(
			transport.AuthErrorCodeMissingCredentials,
			fmt.Sprintf("missing %s header", headerName),
			"apiKey",
		)
	}
	if apiKey != s.APIKey {
		return nil, transport.NewAuthErrorWithScheme(
			transport.AuthErrorCodeInvalidCredentials,
			"invalid API key",
			"apiKey",
		)
	}
	return r, nil
}

// JWTAuthenticator verifies Bearer tokens on inbound requests. Verified
// claims land on the request context and are readable through GetJWTClaims
// and friends.
type JWTAuthenticator struct {
	// SecretKey signs and verifies HMAC tokens.
	SecretKey []byte

	// SigningMethod defaults to HS256.
	SigningMethod jwt.SigningMethod

	// Audience, when set, must appear in the token's aud claim.
	Audience string

	// ValidateFunc runs after the standard checks; return an error to
	// reject the token.
	ValidateFunc func(claims jwt.MapClaims) error
}

// NewJWTAuthenticator creates an HS256 authenticator with the given secret.
func NewJWTAuthenticator(secretKey []byte) *JWTAuthenticator {
	return &JWTAuthenticator{
		SecretKey:     secretKey,
		SigningMethod: jwt.SigningMethodHS256,
	}
}

// WithValidateFunc sets a claims check run after signature verification.
func (j *JWTAuthenticator) WithValidateFunc(fn func(claims jwt.MapClaims) error) *JWTAuthenticator {
	j.ValidateFunc = fn
	return j
}

// WithSigningMethod overrides the expected signing method.
func (j *JWTAuthenticator) WithSigningMethod(method jwt.SigningMethod) *JWTAuthenticator {
	j.SigningMethod = method
	return j
}

// WithAudience requires the aud claim to contain audience.
func (j *JWTAuthenticator) WithAudience(audience string) *JWTAuthenticator {
	j.Audience = audience
	return j
}

// Authenticate implements transport.Authenticator.
func (j *JWTAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*http.Request, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, transport.NewAuthErrorWithScheme(
			transport.AuthErrorCodeMissingCredentials,
			"missing Authorization header",
			"bearer",
		)
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, transport.NewAuthErrorWithScheme(
			transport.AuthErrorCodeInvalidCredentials,
			"Authorization header is not a bearer token",
			"bearer",
		)
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != j.SigningMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.SecretKey, nil
	})
	if err != nil {
		return nil, transport.NewAuthErrorWithScheme(
			transport.AuthErrorCodeInvalidCredentials,
			fmt.Sprintf("invalid token: %v", err),
			"bearer",
		)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, transport.NewAuthErrorWithScheme(
			transport.AuthErrorCodeInvalidCredentials,
			"invalid token claims",
			"bearer",
		)
	}

	// Expiry is checked by the parser already; re-check to report it under
	// the dedicated error code.
	if expTime, err := claims.GetExpirationTime(); err == nil && expTime != nil {
		if expTime.Before(time.Now()) {
			return nil, transport.NewAuthErrorWithScheme(
				transport.AuthErrorCodeExpiredCredentials,
				"token has expired",
				"bearer",
			)
		}
	}

	if j.Audience != "" {
		if err := j.checkAudience(claims); err != nil {
			return nil, err
		}
	}

	if j.ValidateFunc != nil {
		if err := j.ValidateFunc(claims); err != nil {
			return nil, transport.NewAuthErrorWithScheme(
				transport.AuthErrorCodeInvalidCredentials,
				fmt.Sprintf("token rejected: %v", err),
				"bearer",
			)
		}
	}

	newCtx := context.WithValue(r.Context(), jwtContextKey{}, claims)
	newCtx = context.WithValue(newCtx, jwtTokenContextKey{}, tokenString)
	return r.WithContext(newCtx), nil
}

// checkAudience accepts both the string and list forms of the aud claim.
func (j *JWTAuthenticator) checkAudience(claims jwt.MapClaims) error {
	aud, ok := claims["aud"]
	if !ok {
		return transport.NewAuthErrorWithScheme(
			transport.AuthErrorCodeInvalidCredentials,
			"missing audience claim",
			"bearer",
		)
	}
	switch audValue := aud.(type) {
	case string:
		if audValue == j.Audience {
			return nil
		}
	case []interface{}:
		for _, a := range audValue {
			if audStr, ok := a.(string); ok && audStr == j.Audience {
				return nil
			}
		}
	}
	return transport.NewAuthErrorWithScheme(
		transport.AuthErrorCodeInvalidCredentials,
		"audience mismatch",
		"bearer",
	)
}
