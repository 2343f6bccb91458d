// Package jwttoken issues and validates the operator access tokens that scope
// every /v1 request to a tenant.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
)

// Claims represents the JWT claims for operator access tokens.
type Claims struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService handles JWT creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

func NewJWTService(signingKey string, issuer string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		now:        time.Now,
	}
}

// GenerateAccessToken signs an HS256 token for an operator of tenantID.
func (s *JWTService) GenerateAccessToken(tenantID id.TenantID, userID id.UserID, expiresIn time.Duration) (string, error) {
	now := s.now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TenantID: tenantID.String(),
		UserID:   userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// ValidateTenantToken validates the token and parses its tenant and user
// claims into typed IDs. Satisfies middleware.TokenValidator.
func (s *JWTService) ValidateTenantToken(tokenString string) (id.TenantID, id.UserID, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return id.TenantID{}, id.UserID{}, err
	}
	tenantID, err := id.ParseTenantID(claims.TenantID)
	if err != nil {
		return id.TenantID{}, id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return id.TenantID{}, id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return tenantID, userID, nil
}
