package handler

import (
	"bank-backoffice/internal/api/middleware"
	"net/http"
	"time"
)

type CookieOptions struct {
	Secure     bool
	CaptchaTTL time.Duration
}

func (o CookieOptions) set(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o CookieOptions) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o CookieOptions) setSession(w http.ResponseWriter, token string, expires time.Time) {
	o.set(w, middleware.SessionCookie, token, expires)
}

func (o CookieOptions) clearSession(w http.ResponseWriter) {
	o.clear(w, middleware.SessionCookie)
}

func (o CookieOptions) setCaptcha(w http.ResponseWriter, captchaID string) {
	ttl := o.CaptchaTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	o.set(w, middleware.CaptchaIDCookie, captchaID, time.Now().Add(ttl))
}

func captchaIDFrom(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if c, err := r.Cookie(middleware.CaptchaIDCookie); err == nil {
		return c.Value
	}
	return ""
}
