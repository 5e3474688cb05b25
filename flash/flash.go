// Package flash carries a one-shot message across a redirect, the way the
// pages use it: set on the redirecting handler, consumed by the next render.
package flash

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

const cookieName = "hm_flash"

type Message struct {
	Text  string
	Class string // bootstrap alert class: success, danger, warning, info
}

// Set stores a flash message in a short-lived cookie.
func Set(c *gin.Context, class, text string) {
	value := url.QueryEscape(class + "|" + text)
	c.SetCookie(cookieName, value, 60, "/", "", false, true)
}

// Pop returns the pending message, if any, and clears it.
func Pop(c *gin.Context) *Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	for i := 0; i < len(decoded); i++ {
		if decoded[i] == '|' {
			return &Message{Class: decoded[:i], Text: decoded[i+1:]}
		}
	}
	return &Message{Class: "info", Text: decoded}
}
