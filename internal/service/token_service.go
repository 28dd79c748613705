package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vidstream/internal/model"
	"vidstream/pkg/apierror"
)

// TokenService mints and verifies the two JWT kinds. Access and
// refresh tokens are signed with distinct secrets, so one kind can
// never pass verification as the other. Verification is stateless;
// whether a refresh token is still the live one for its user is the
// session manager's call.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("token secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("access and refresh secrets must differ")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// WithClock overrides the time source. Tests use it to cross TTL
// boundaries without sleeping.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) IssueAccessToken(user model.User) (string, error) {
	now := s.now().UTC()
	return signToken(jwt.MapClaims{
		"sub":       user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"full_name": user.FullName,
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       now.Add(s.accessTTL).Unix(),
	}, s.accessSecret)
}

// IssueRefreshToken carries only the user id as identity; everything
// else is looked up fresh when the token is redeemed. The jti keeps
// two tokens minted within the same second distinguishable, which
// rotation depends on.
func (s *TokenService) IssueRefreshToken(user model.User) (string, error) {
	now := s.now().UTC()
	return signToken(jwt.MapClaims{
		"sub": user.ID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	}, s.refreshSecret)
}

func (s *TokenService) VerifyAccessToken(tokenString string) (*model.AccessClaims, error) {
	claimsMap, err := s.parseToken(tokenString, s.accessSecret)
	if err != nil {
		return nil, err
	}

	claims := &model.AccessClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.FullName, _ = claimsMap["full_name"].(string)

	if claims.UserID == "" {
		return nil, apierror.Unauthorized("invalid token subject")
	}

	return claims, nil
}

// VerifyRefreshToken returns the embedded user id.
func (s *TokenService) VerifyRefreshToken(tokenString string) (string, error) {
	claimsMap, err := s.parseToken(tokenString, s.refreshSecret)
	if err != nil {
		return "", err
	}

	userID, _ := claimsMap["sub"].(string)
	if userID == "" {
		return "", apierror.Unauthorized("invalid token subject")
	}

	return userID, nil
}

func (s *TokenService) parseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenInvalid
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apierror.Unauthorized("token expired")
	}
	if err != nil || !parsed.Valid {
		return nil, apierror.Unauthorized("invalid token")
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Unauthorized("invalid token claims")
	}

	return claimsMap, nil
}

func signToken(claims jwt.MapClaims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
