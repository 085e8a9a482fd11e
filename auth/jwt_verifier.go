// api/auth/jwt_verifier.go
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

const (
	IdentityTokenHeader = "X-Identity-Token"

	// A token's certificates are forwarded once per window. The set of
	// remembered tokens is capped so it cannot grow with traffic.
	deliveredTokenCapacity = 10000
	deliveredTokenWindow   = time.Hour
)

// CertificateClaims carries the identity key as subject and the certificates
// the holder chose to reveal.
type CertificateClaims struct {
	jwt.StandardClaims
	Certificates []model.Credential `json:"certificates,omitempty"`
}

// JWTVerifier accepts HS256 identity tokens signed with a shared secret and
// forwards only certificates from trusted certifiers of requested types.
// Replaying a token authenticates the sender again but does not hand its
// certificates over a second time.
type JWTVerifier struct {
	secret    []byte
	validator *util.ValidationUtil

	mu        sync.Mutex
	delivered *expirable.LRU[string, struct{}]
}

func NewJWTVerifier(secret []byte, validator *util.ValidationUtil) *JWTVerifier {
	return &JWTVerifier{
		secret:    secret,
		validator: validator,
		delivered: expirable.NewLRU[string, struct{}](deliveredTokenCapacity, nil, deliveredTokenWindow),
	}
}

func (v *JWTVerifier) Verify(r *http.Request) (*Result, error) {
	tokenString := tokenFromRequest(r)
	if tokenString == "" {
		return nil, fmt.Errorf("%w: no identity token", echo_errors.ErrUnauthenticated)
	}

	token, err := jwt.ParseWithClaims(tokenString, &CertificateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", echo_errors.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*CertificateClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", echo_errors.ErrUnauthenticated)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", echo_errors.ErrUnauthenticated)
	}

	if len(claims.Certificates) == 0 || !v.firstDelivery(tokenString) {
		return &Result{Identity: claims.Subject}, nil
	}

	certs := make([]model.Credential, 0, len(claims.Certificates))
	for _, c := range claims.Certificates {
		if c.Subject != "" && c.Subject != claims.Subject {
			logger.Warn("Certificate subject does not match sender",
				zap.String("identity", claims.Subject),
				zap.String("subject", c.Subject))
			continue
		}
		c.Subject = claims.Subject
		certs = append(certs, c)
	}

	accepted, rejected := v.validator.FilterCredentials(certs)
	for _, err := range rejected {
		logger.Warn("Certificate rejected", zap.String("identity", claims.Subject), zap.Error(err))
	}

	return &Result{Identity: claims.Subject, Certificates: accepted}, nil
}

// firstDelivery reports whether token has not been seen in the current window
// and remembers it.
func (v *JWTVerifier) firstDelivery(token string) bool {
	sum := sha256.Sum256([]byte(token))
	key := hex.EncodeToString(sum[:])

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.delivered.Contains(key) {
		return false
	}
	v.delivered.Add(key, struct{}{})
	return true
}

// IssueToken signs an identity token. Used by tooling and tests standing in
// for the wallet side of the handshake.
func IssueToken(secret []byte, identity string, certs []model.Credential, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CertificateClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   identity,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Certificates: certs,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(r.Header.Get(IdentityTokenHeader))
}
