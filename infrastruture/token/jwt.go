package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazesolver/service/i"
	"github.com/dgrijalva/jwt-go"
)

const (
	// ClaimClient names the API client a token was issued to.
	ClaimClient = "client"
	// ClaimScope lists what the client may do. Only ScopeSolve exists today.
	ClaimScope = "scope"
	ScopeSolve = "mazes:solve"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongIssuer  = errors.New("token issued by another issuer")
)

// JwtService handles JWT operations.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a JWT for the given claims, stamped with the service issuer.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	jwtClaims := jwt.MapClaims{
		"exp": now.Add(expTime).Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
	}
	for key, val := range claims {
		jwtClaims[key] = val
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrWrongIssuer
	}

	return claims, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}

// IssueClientToken issues a solve-scoped token for an API client.
func IssueClientToken(ts i.Tokenizer, client string, ttl time.Duration) (string, error) {
	if client == "" {
		return "", errors.New("client name cannot be empty")
	}
	return ts.Generate(map[string]interface{}{
		ClaimClient: client,
		ClaimScope:  ScopeSolve,
	}, ttl)
}

// ClientFromClaims returns the client a solve-scoped token was issued to.
func ClientFromClaims(claims map[string]interface{}) (string, error) {
	client, _ := claims[ClaimClient].(string)
	scope, _ := claims[ClaimScope].(string)
	if client == "" || scope != ScopeSolve {
		return "", ErrInvalidToken
	}
	return client, nil
}
