package taskmate

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credentials is the backend session: the cookies set by Login, replayed on
// later calls. The zero value sends no Cookie header.
type Credentials struct {
	cookies []*http.Cookie
}

// CredentialsFromCookies keeps the non-empty, non-deleting cookies from a
// Set-Cookie list.
func CredentialsFromCookies(cookies []*http.Cookie) Credentials {
	var kept []*http.Cookie
	for _, cookie := range cookies {
		if cookie == nil || strings.TrimSpace(cookie.Value) == "" || cookie.MaxAge < 0 {
			continue
		}
		kept = append(kept, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return Credentials{cookies: kept}
}

// ParseCredentials restores credentials from their Header form.
func ParseCredentials(header string) (Credentials, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Credentials{}, nil
	}
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return Credentials{}, fmt.Errorf("taskmate: parse credentials: %w", err)
	}
	return Credentials{cookies: cookies}, nil
}

// Header renders the Cookie header value.
func (c Credentials) Header() string {
	parts := make([]string, 0, len(c.cookies))
	for _, cookie := range c.cookies {
		parts = append(parts, cookie.Name+"="+cookie.Value)
	}
	return strings.Join(parts, "; ")
}

// IsZero reports whether no cookie is held.
func (c Credentials) IsZero() bool {
	return len(c.cookies) == 0
}

// TokenExpiry returns the earliest exp claim among cookie values that parse as
// JWTs. Signatures are not checked; the backend remains the authority.
func (c Credentials) TokenExpiry() (time.Time, bool) {
	parser := jwt.NewParser()
	var earliest time.Time
	for _, cookie := range c.cookies {
		claims := jwt.RegisteredClaims{}
		if _, _, err := parser.ParseUnverified(cookie.Value, &claims); err != nil {
			continue
		}
		if claims.ExpiresAt == nil {
			continue
		}
		if exp := claims.ExpiresAt.Time; earliest.IsZero() || exp.Before(earliest) {
			earliest = exp
		}
	}
	return earliest, !earliest.IsZero()
}

// CookieExpiry returns the earliest expiry announced by a Set-Cookie list.
func CookieExpiry(cookies []*http.Cookie, now time.Time) (time.Time, bool) {
	var earliest time.Time
	for _, cookie := range cookies {
		if cookie == nil || cookie.MaxAge < 0 {
			continue
		}
		var exp time.Time
		switch {
		case cookie.MaxAge > 0:
			exp = now.Add(time.Duration(cookie.MaxAge) * time.Second)
		case !cookie.Expires.IsZero():
			exp = cookie.Expires
		default:
			continue
		}
		if earliest.IsZero() || exp.Before(earliest) {
			earliest = exp
		}
	}
	return earliest, !earliest.IsZero()
}
