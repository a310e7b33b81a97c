package visitor

import (
	"errors"
	"net/http"
	"time"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

// CookieJar keeps the token in the paintx_vid cookie of one HTTP exchange.
type CookieJar struct {
	r      *http.Request
	w      http.ResponseWriter
	secure bool
}

// NewCookieJar binds a jar to a request/response pair.
func NewCookieJar(w http.ResponseWriter, r *http.Request, secure bool) *CookieJar {
	return &CookieJar{r: r, w: w, secure: secure}
}

// Load reads the cookie. Browsers drop expired cookies, so a cookie that
// was sent is treated as unexpired.
func (j *CookieJar) Load() (domain.VisitorIdentity, bool, error) {
	c, err := j.r.Cookie(CookieName)
	if errors.Is(err, http.ErrNoCookie) {
		return domain.VisitorIdentity{}, false, nil
	}
	if err != nil {
		return domain.VisitorIdentity{}, false, err
	}
	return domain.VisitorIdentity{Token: c.Value, ExpiresAt: time.Now().Add(TokenTTL)}, true, nil
}

func (j *CookieJar) Save(v domain.VisitorIdentity) error {
	http.SetCookie(j.w, NewCookie(v, j.secure))
	// Make the token visible to later reads within the same request.
	j.r.AddCookie(&http.Cookie{Name: CookieName, Value: v.Token})
	return nil
}

// NewCookie builds the persisted visitor cookie.
func NewCookie(v domain.VisitorIdentity, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    v.Token,
		Path:     "/",
		Expires:  v.ExpiresAt,
		MaxAge:   int(TokenTTL / time.Second),
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}
