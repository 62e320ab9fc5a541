package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const flashMaxAge = 60

// Flash is a one-shot message shown after a redirect
type Flash struct {
	Kind    string
	Message string
}

// FlashCookie carries flashes across one redirect
type FlashCookie struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// Set stores a flash for the next page view
func (f FlashCookie) Set(c *gin.Context, kind, msg string) {
	c.SetSameSite(f.SameSite)
	c.SetCookie(f.Name, kind+"|"+msg, flashMaxAge, "/", "", f.Secure, true)
}

// Pop returns the pending flash, if any, and clears it
func (f FlashCookie) Pop(c *gin.Context) *Flash {
	value, err := c.Cookie(f.Name)
	if err != nil || value == "" {
		return nil
	}
	c.SetSameSite(f.SameSite)
	c.SetCookie(f.Name, "", -1, "/", "", f.Secure, true)

	kind, msg, ok := strings.Cut(value, "|")
	if !ok || (kind != FlashSuccess && kind != FlashError) {
		return nil
	}
	return &Flash{Kind: kind, Message: msg}
}
