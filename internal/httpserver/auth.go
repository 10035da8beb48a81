// internal/httpserver/auth.go
//
// Player identity and game access tokens.
//
//   - Players are anonymous: a random ID in the "julekalender_player" cookie.
//   - POST /game/new returns an HS256 JWT binding the game ID (gid) to the
//     player (sub). Every /game/{id} route requires it as a Bearer token.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const playerCookieName = "julekalender_player"

// AuthConfig configures token signing and cookie attributes.
type AuthConfig struct {
	Secret     string
	TokenTTL   time.Duration
	Production bool // Secure + SameSite=None cookies
}

// gameClaims is the token payload.
type gameClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

var errTokenGame = errors.New("token does not match game")

// signGameToken creates a token for gameID owned by playerID.
func (a AuthConfig) signGameToken(gameID, playerID string, now time.Time) (string, error) {
	ttl := a.TokenTTL
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return t.SignedString([]byte(a.Secret))
}

// parseGameToken verifies tok and checks it was issued for gameID.
func (a AuthConfig) parseGameToken(tok, gameID string) (*gameClaims, error) {
	claims := &gameClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !t.Valid || claims.GameID != gameID {
		return nil, errTokenGame
	}
	return claims, nil
}

// ctxPlayerKey is the context key for the player ID from a verified token.
type ctxPlayerKey struct{}

// requireGameToken enforces a valid token for the {id} URL parameter.
func (s *Server) requireGameToken(idParam func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearer(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "missing_token")
				return
			}
			claims, err := s.deps.Auth.parseGameToken(tok, idParam(r))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxPlayerKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// playerFromContext returns the player ID stored by requireGameToken.
func playerFromContext(ctx context.Context) string {
	p, _ := ctx.Value(ctxPlayerKey{}).(string)
	return p
}

// ensurePlayerID returns an existing player cookie or sets a new one.
func (s *Server) ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	sameSite := http.SameSiteLaxMode
	if s.deps.Auth.Production {
		sameSite = http.SameSiteNoneMode // required for third‑party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.deps.Auth.Production,
		SameSite: sameSite,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// bearer extracts a token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
