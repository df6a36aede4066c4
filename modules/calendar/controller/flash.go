package controller

import (
	"crypto/sha256"
	"net/http"

	"roombook/core/logger"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

const flashCookieName = "roombook_flash"

// FlashMessage is a one-shot notice carried across a redirect.
// Category is "success" or "error" and selects the banner style.
type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// FlashManager stores flash messages in a signed cookie so the server
// stays stateless across the POST-redirect-GET cycle.
type FlashManager struct {
	codec *securecookie.SecureCookie
}

func NewFlashManager(secretKey string) *FlashManager {
	hashKey := sha256.Sum256([]byte(secretKey))
	sc := securecookie.New(hashKey[:], nil)
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &FlashManager{codec: sc}
}

// Add appends a message to the pending flash cookie.
func (f *FlashManager) Add(c echo.Context, category, message string) {
	msgs := f.pending(c)
	msgs = append(msgs, FlashMessage{Category: category, Message: message})
	f.set(c, msgs)
}

// Pop returns all pending messages and clears the cookie.
func (f *FlashManager) Pop(c echo.Context) []FlashMessage {
	msgs := f.pending(c)
	if len(msgs) > 0 {
		f.clear(c)
	}
	return msgs
}

func (f *FlashManager) pending(c echo.Context) []FlashMessage {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	var msgs []FlashMessage
	if err := f.codec.Decode(flashCookieName, cookie.Value, &msgs); err != nil {
		// Tampered or stale cookie: drop it.
		f.clear(c)
		return nil
	}
	return msgs
}

func (f *FlashManager) set(c echo.Context, msgs []FlashMessage) {
	encoded, err := f.codec.Encode(flashCookieName, msgs)
	if err != nil {
		logger.Warn("FlashManager:Encode", "error", err)
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (f *FlashManager) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
