package main

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

const cookieName = "lf_user"

// setUserCookie stores the username for a year. The value is URL-escaped:
// cookie values cannot carry raw non-ASCII bytes and usernames like
// "Jürgen" must survive the round trip.
func setUserCookie(c *gin.Context, username string, secureCookies bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookieName,
		Value:    url.QueryEscape(username),
		Path:     "/",
		MaxAge:   365 * 24 * 3600,
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// EnsureUser resolves the username from the X-User header (frontend
// override) or the cookie, loads the progress record (creating an empty
// one on first use), applies the streak update in memory and exposes both
// under context keys. Handlers that mutate the record persist it.
func EnsureUser(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.Cookie unescapes the value set by setUserCookie
		username := c.GetHeader("X-User")
		if username == "" {
			username, _ = c.Cookie(cookieName)
		}
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			c.Abort()
			return
		}

		rec, err := store.Load(username)
		if err == ErrNotFound {
			rec = NewProgressRecord(username)
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load progress failed"})
			c.Abort()
			return
		}
		UpdateStreak(rec, time.Now())

		c.Set("username", username)
		c.Set("record", rec)
		c.Next()
	}
}

// recordFrom pulls the per-request ProgressRecord set by EnsureUser.
func recordFrom(c *gin.Context) (*ProgressRecord, bool) {
	v, ok := c.Get("record")
	if !ok {
		return nil, false
	}
	rec, ok := v.(*ProgressRecord)
	return rec, ok
}
