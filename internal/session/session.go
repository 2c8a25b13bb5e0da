// Package session owns the authenticated-session lifecycle: the scs manager
// configuration and the typed accessors every handler goes through. The
// bearer token never leaves the server-side session; the browser only holds
// the opaque session cookie.
package session

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

func init() {
	// Sidebar disclosure state is stored as a slice inside the gob-encoded
	// session payload.
	gob.Register([]string{})
}

// New creates a new session manager configured with SQLite store.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	// Use SQLite store
	sm.Store = sqlite3store.New(db)

	// Configure session
	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
