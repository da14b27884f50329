package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyInfo     = "info"
	flashKeyWarning  = "warning"

	handoffSessionName = "handoff-session"
)

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, _ := session.Get(flashSessionName, c)
	sess.AddFlash(message, key)
	sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFlashInfo sets an informational flash message.
func SetFlashInfo(c echo.Context, message string) {
	setFlash(c, flashKeyInfo, message)
}

// SetFlashWarning sets a warning flash message.
func SetFlashWarning(c echo.Context, message string) {
	setFlash(c, flashKeyWarning, message)
}

// GetFlashes retrieves and clears flash messages from the session. Each
// message renders as a toast on the next page view.
func GetFlashes(c echo.Context) map[string][]interface{} {
	flashes := make(map[string][]interface{})

	sess, _ := session.Get(flashSessionName, c)

	var any bool
	for _, key := range []string{flashKeySuccess, flashKeyError, flashKeyInfo, flashKeyWarning} {
		// Flashes() retrieves and clears the messages for a key.
		if msgs := sess.Flashes(key); len(msgs) > 0 {
			flashes[key] = msgs
			any = true
		}
	}

	// Save the session to persist the clearing of flashes.
	if any {
		_ = sess.Save(c.Request(), c.Response())
	}
	return flashes
}

// FlashData groups flashed messages by severity for the toast stack.
type FlashData struct {
	Success []string
	Error   []string
	Info    []string
	Warning []string
}

// GetFlashData retrieves and clears flash messages, typed for rendering.
func GetFlashData(c echo.Context) FlashData {
	flashes := GetFlashes(c)
	return FlashData{
		Success: toStrings(flashes[flashKeySuccess]),
		Error:   toStrings(flashes[flashKeyError]),
		Info:    toStrings(flashes[flashKeyInfo]),
		Warning: toStrings(flashes[flashKeyWarning]),
	}
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SetHandoff stores a value passed from one page to the next, e.g. a
// transfer request reference carried from the listing page to the
// send-money form. Values survive exactly one read.
func SetHandoff(c echo.Context, key, value string) {
	sess, _ := session.Get(handoffSessionName, c)
	sess.AddFlash(value, key)
	sess.Save(c.Request(), c.Response())
}

// ConsumeHandoff reads and clears a handoff value. Returns the empty
// string when nothing was stored.
func ConsumeHandoff(c echo.Context, key string) string {
	sess, _ := session.Get(handoffSessionName, c)
	values := sess.Flashes(key)
	if len(values) == 0 {
		return ""
	}
	_ = sess.Save(c.Request(), c.Response())
	if s, ok := values[len(values)-1].(string); ok {
		return s
	}
	return ""
}
