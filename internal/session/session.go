package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// NewFlashManager creates the scs manager that carries one-shot flash
// messages across admin redirects. It holds no authentication state, so an
// in-memory store that forgets everything on restart is sufficient.
func NewFlashManager(isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = memstore.New()

	sm.Lifetime = 1 * time.Hour
	sm.Cookie.Name = "portfolio_flash"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
