package api

import (
	"net/http"

	"github.com/ldisk/gatehouse/auth"
	"github.com/ldisk/gatehouse/internal/logutil"
)

type (
	// Realm wraps sensitive handlers with the cookie/login gate. One realm
	// holds the account store and the session registry for the whole
	// process, handlers share it across every request.
	Realm struct {
		accounts       auth.Store
		sessions       auth.SessionRegistry
		loginPage      []byte
		insecureCookie bool
	}
)

const (
	// SessionCookieName is the fixed name of the session cookie.
	SessionCookieName = "clocks"

	// UsernameHeader and PasswordHeader carry the login credentials in
	// clear text. Header names are case-insensitive per HTTP. This only
	// makes sense behind a trusted transport (terminated TLS).
	UsernameHeader = "Username"
	PasswordHeader = "Password"
)

// DefaultLoginPage is served on rejected requests when the content root
// does not ship its own login.html.
var DefaultLoginPage = []byte(`<!doctype html>
<html>
<head><title>Please log in</title></head>
<body><h1>Please log in</h1><p>You need to authenticate before visiting this page.</p></body>
</html>
`)

func NewRealm(accounts auth.Store, sessions auth.SessionRegistry, loginPage []byte, allowHTTPCookie bool) *Realm {
	if len(loginPage) == 0 {
		loginPage = DefaultLoginPage
	}
	return &Realm{
		accounts:       accounts,
		sessions:       sessions,
		loginPage:      loginPage,
		insecureCookie: allowHTTPCookie,
	}
}

// Protect gates sensitive behind the realm. A request gets through when its
// session cookie is known to the registry, or when its credential headers
// verify (which also issues a fresh session cookie). Everything else gets a
// 401 with the login page and sensitive is never invoked.
func (s *Realm) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.validSession(r) {
			sensitive.ServeHTTP(w, r)
			return
		}
		if s.login(w, r) {
			sensitive.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(s.loginPage)
	})
}

func (s *Realm) validSession(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	found, err := s.sessions.Lookup(r.Context(), cookie.Value)
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unexpected error when checking session registry")
		return false
	}
	return found
}

// login attempts a credential-header login. Password hashing runs to
// completion before the registry write lock is ever taken, so concurrent
// logins never serialize on the hash.
func (s *Realm) login(w http.ResponseWriter, r *http.Request) bool {
	username := r.Header.Get(UsernameHeader)
	password := r.Header.Get(PasswordHeader)
	if username == "" || password == "" {
		return false
	}
	if !auth.Verify(r.Context(), s.accounts, username, password) {
		return false
	}
	log := logutil.GetOrDefault(r.Context())
	token, err := auth.NewSessionToken()
	if err != nil {
		log.Error().Err(err).Msg("Unable to mint session token")
		return false
	}
	if err := s.sessions.Save(r.Context(), token); err != nil {
		log.Error().Err(err).Msg("Unable to save session token")
		return false
	}
	http.SetCookie(w, s.sessionCookie(token))
	log.Debug().Str("username", username).Msg("Login accepted")
	return true
}

// sessionCookie builds the session-lifetime cookie: SameSite=Strict and no
// max age, so it dies with the browser session.
func (s *Realm) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   !s.insecureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
