package jwt

import (
	"errors"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenLifetime = 5 * time.Minute
)

var ErrInvalidClaims = errors.New("token claims are missing or malformed")

type Service interface {
	GenerateAccessToken(workerID string, email string, role worker.Role) (token string, expiresAt int64, err error)
	GenerateSSEToken(workerID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (workerID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]int64 // token -> unix expiry
	mu                    sync.RWMutex
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) *JWTService {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]int64),
		now:                   time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(workerID string, email string, role worker.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id": workerID,
		"email":   email,
		"role":    string(role),
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken blocks a token until it expires. Expired entries are pruned
// on every call.
func (j *JWTService) RevokeToken(token string) {
	exp := j.now().Add(j.accessTokenExpiration).Unix()
	if parsed, err := j.tokenAuth.Decode(token); err == nil && !parsed.Expiration().IsZero() {
		exp = parsed.Expiration().Unix()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, until := range j.revokedTokens {
		if until < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = exp
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(workerID string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTokenLifetime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": workerID,
		"type":    TokenTypeSSE,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenLifetime.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the worker ID
func (j *JWTService) ValidateSSEToken(tokenString string) (workerID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	claims := token.PrivateClaims()
	if claims["type"] != TokenTypeSSE {
		return "", ErrInvalidClaims
	}

	workerID, ok := claims["user_id"].(string)
	if !ok || workerID == "" {
		return "", ErrInvalidClaims
	}

	return workerID, nil
}

// ActorFromClaims builds the caller identity from access token claims.
func ActorFromClaims(claims map[string]interface{}) (worker.Actor, error) {
	if claims["type"] != TokenTypeAccess {
		return worker.Actor{}, ErrInvalidClaims
	}

	workerID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if workerID == "" || !worker.Role(role).IsValid() {
		return worker.Actor{}, ErrInvalidClaims
	}

	return worker.Actor{WorkerID: workerID, Role: worker.Role(role)}, nil
}
