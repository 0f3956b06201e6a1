// internal/httpserver/auth.go
//
// Player identity.
// Every request runs as a player. The identity is a signed HS256 JWT whose
// subject is a random UUID, carried in a cookie (browsers) or an
// Authorization: Bearer header (CLI, tests). A request without a valid token
// gets a fresh identity; the token is set as a cookie and echoed in the
// X-Player-Token response header.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

// PlayerTokenHeader carries a newly issued player token.
const PlayerTokenHeader = "X-Player-Token"

// Auth configures player tokens.
type Auth struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type ctxPlayerKey struct{}

// playerFrom returns the player ID placed in ctx by withPlayer.
func playerFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// withPlayer resolves or issues the player identity. It never rejects.
func (s *Server) withPlayer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := s.parsePlayer(s.bearerOrCookie(r))
			if err != nil {
				id = uuid.NewString()
				tok, exp, err := s.signPlayer(id)
				if err != nil {
					hlog.FromRequest(r).Error().Err(err).Msg("sign player token")
					writeError(w, http.StatusInternalServerError, "sign_failed", "could not issue player token")
					return
				}
				s.setPlayerCookie(w, tok, exp)
				w.Header().Set(PlayerTokenHeader, tok)
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id)))
		})
	}
}

// signPlayer creates a token for id that expires after Auth.TTL.
func (s *Server) signPlayer(id string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.opts.Auth.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.opts.Auth.Secret)
	return ss, exp, err
}

func (s *Server) parsePlayer(tok string) (string, error) {
	if tok == "" {
		return "", errors.New("no token")
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (interface{}, error) {
		return s.opts.Auth.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.Wrap(err, "subject")
	}
	return claims.Subject, nil
}

func (s *Server) setPlayerCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.Auth.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.Auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Auth.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.opts.Auth.CookieName); err == nil {
		return c.Value
	}
	return ""
}
