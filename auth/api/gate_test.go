package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/ldisk/gatehouse/auth"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
)

func testRealm(t *testing.T) (*Realm, auth.SessionRegistry) {
	acct, err := auth.NewAccount("bob", "hunter2")
	require.NoError(t, err)
	store := auth.NewMemStore()
	store.Put(acct)
	sessions := auth.InMemorySessions()
	return NewRealm(store, sessions, nil, true), sessions
}

func TestProtectRejectsAnonymous(t *testing.T) {
	realm, _ := testRealm(t)
	var count uint32
	protected := realm.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint32(&count, 1)
	}))

	apitest.Handler(protected).
		Get("/private/index.html").
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(string(DefaultLoginPage)).
		End()
	if count != 0 {
		t.Fatal("protected handler should not have been called")
	}
}

func TestProtectHeaderLogin(t *testing.T) {
	realm, sessions := testRealm(t)
	protected := realm.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "OK", http.StatusOK)
	}))

	result := apitest.Handler(protected).
		Get("/private/index.html").
		Header(UsernameHeader, "bob").
		Header(PasswordHeader, "hunter2").
		Expect(t).
		Status(http.StatusOK).
		End()

	cookies := result.Response.Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, SessionCookieName, cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
	require.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	require.Zero(t, cookies[0].MaxAge)

	found, err := sessions.Lookup(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	require.True(t, found)

	// the cookie alone must be enough from now on, and no new cookie
	// should be issued for it
	result = apitest.Handler(protected).
		Get("/private/index.html").
		Cookie(SessionCookieName, cookies[0].Value).
		Expect(t).
		Status(http.StatusOK).
		End()
	require.Empty(t, result.Response.Cookies())
}

func TestProtectWrongPassword(t *testing.T) {
	realm, _ := testRealm(t)
	protected := realm.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "OK", http.StatusOK)
	}))

	result := apitest.Handler(protected).
		Get("/private/index.html").
		Header(UsernameHeader, "bob").
		Header(PasswordHeader, "hunter3").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
	require.Empty(t, result.Response.Cookies())
}

func TestProtectUnknownUser(t *testing.T) {
	realm, _ := testRealm(t)
	protected := realm.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "OK", http.StatusOK)
	}))

	// an unknown user must be indistinguishable from a wrong password
	apitest.Handler(protected).
		Get("/private/index.html").
		Header(UsernameHeader, "eve").
		Header(PasswordHeader, "hunter2").
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(string(DefaultLoginPage)).
		End()
}

func TestProtectStaleCookie(t *testing.T) {
	realm, _ := testRealm(t)
	protected := realm.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "OK", http.StatusOK)
	}))

	apitest.Handler(protected).
		Get("/private/index.html").
		Cookie(SessionCookieName, "not-a-known-session").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}
