package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	accessTokenType = "access"
	defaultSkew     = 30 * time.Second
)

// Service verifies bearer tokens issued by the identity provider that shares
// the HS256 secret. Minting is limited to access tokens for internal callers
// such as the payroll exporter.
type Service interface {
	GenerateAccessToken(subject string, ttl time.Duration) (token string, expiresAt int64, err error)
	Subject(tokenString string) (string, error)
	AccessSubject(token jwt.Token) (string, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
	now       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, skew time.Duration) Service {
	if skew <= 0 {
		skew = defaultSkew
	}
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(skew)),
		now:       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(subject string, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(ttl).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": accessTokenType,
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

// Subject validates an access token and returns its subject claim.
func (j *JWTService) Subject(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}
	return j.AccessSubject(token)
}

// AccessSubject checks that an already verified token is an access token
// carrying a subject, and returns that subject.
func (j *JWTService) AccessSubject(token jwt.Token) (string, error) {
	if token == nil {
		return "", jwt.ErrInvalidJWT()
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != accessTokenType {
		return "", jwt.ErrInvalidJWT()
	}

	if token.Subject() == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return token.Subject(), nil
}
