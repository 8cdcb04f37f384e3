package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	// ErrTokenMalformed is returned for tokens that cannot be parsed at all.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenInvalid is returned for well-formed but unverifiable or expired tokens.
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// Claims carried in every access token. JTI identifies the token for
// revocation; Role is embedded so the authorization gate does not need a
// user lookup on every request.
type Claims struct {
	UserID int64
	Role   string
	JTI    string
	Expiry time.Time
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a token for the user. The returned expiry is also the
// revocation TTL used at logout.
func (i *Issuer) Issue(userID int64, role string) (token string, claims Claims, err error) {
	now := time.Now()
	claims = Claims{
		UserID: userID,
		Role:   role,
		JTI:    uuid.NewString(),
		Expiry: now.Add(i.ttl),
	}
	jwtClaims := jwt.MapClaims{
		"sub":  claims.UserID,
		"role": claims.Role,
		"jti":  claims.JTI,
		"iat":  now.Unix(),
		"exp":  claims.Expiry.Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims).SignedString(i.secret)
	return token, claims, err
}

// Parse verifies the signature and expiry and extracts the claims.
func (i *Issuer) Parse(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, ErrTokenMalformed
		}
		return Claims{}, ErrTokenInvalid
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	sub, ok := mapClaims["sub"].(float64)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	role, _ := mapClaims["role"].(string)
	jti, _ := mapClaims["jti"].(string)
	if role == "" || jti == "" {
		return Claims{}, ErrTokenInvalid
	}

	claims := Claims{UserID: int64(sub), Role: role, JTI: jti}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.Expiry = time.Unix(int64(exp), 0)
	}
	return claims, nil
}
