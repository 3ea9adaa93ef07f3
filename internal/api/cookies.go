package api

import (
	"time"

	"itgirls-web/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	visitorCookie = "itg_visitor"
	visitorTTL    = 365 * 24 * time.Hour
)

type cookieJar struct {
	secure bool
}

// set writes the cookie for handle and expires the other scope's cookie.
// Transient handles get a browser-session cookie.
func (j cookieJar) set(c *fiber.Ctx, h session.Handle) {
	cookie := j.base(h.Cookie(), h.Key)
	if h.Scope == session.Persistent {
		cookie.Expires = time.Now().Add(h.TTL)
		cookie.MaxAge = int(h.TTL.Seconds())
	}
	c.Cookie(cookie)

	other := session.TransientCookie
	if h.Scope == session.Transient {
		other = session.PersistentCookie
	}
	j.expire(c, other)
}

func (j cookieJar) visitor(c *fiber.Ctx, id string) {
	cookie := j.base(visitorCookie, id)
	cookie.Expires = time.Now().Add(visitorTTL)
	cookie.MaxAge = int(visitorTTL.Seconds())
	c.Cookie(cookie)
}

func (j cookieJar) clear(c *fiber.Ctx) {
	j.expire(c, session.PersistentCookie)
	j.expire(c, session.TransientCookie)
}

func (j cookieJar) expire(c *fiber.Ctx, name string) {
	cookie := j.base(name, "")
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	c.Cookie(cookie)
}

func (j cookieJar) base(name, value string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   j.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
