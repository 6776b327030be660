package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookies writes and clears the session cookie. The cookie is always HttpOnly
// so the token is never reachable from script.
type Cookies struct {
	Domain string
	Secure bool
}

func (c Cookies) Write(ctx *gin.Context, token string, ttl time.Duration) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   int(ttl / time.Second),
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) Clear(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token extracts the session token from the request, or "" when absent.
func Token(ctx *gin.Context) string {
	cookie, err := ctx.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie
}
