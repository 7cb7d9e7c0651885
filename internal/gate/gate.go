// Package gate decides, before any page renders, whether a request may
// proceed based on the presence of the auth cookie. Presence only: the value
// is not validated here, the backend authorizes every API call it receives.
package gate

import (
	"net/http"
	"net/url"

	"github.com/OgheneDev/technest-frontend-sub001/internal/session"
)

// Action is what the gate wants done with a request.
type Action int

const (
	Allow Action = iota
	Redirect
)

// Decision is the gate's verdict. Target is set when Action is Redirect.
type Decision struct {
	Action Action
	Target string
}

// publicPaths need no token. Home is public but, unlike the auth pages, stays
// reachable while authenticated.
var publicPaths = map[string]bool{
	"/":                true,
	"/login":           true,
	"/register":        true,
	"/forgot-password": true,
	"/reset-password":  true,
}

// authPages are the public pages an authenticated user is bounced away from.
var authPages = map[string]bool{
	"/login":           true,
	"/register":        true,
	"/forgot-password": true,
	"/reset-password":  true,
}

// Decide is a pure function of the request path and token presence.
func Decide(path string, hasToken bool) Decision {
	if !hasToken {
		if publicPaths[path] {
			return Decision{Action: Allow}
		}
		// Preserve the requested page for the post-login redirect.
		return Decision{Action: Redirect, Target: "/login?from=" + url.QueryEscape(path)}
	}

	if authPages[path] {
		return Decision{Action: Redirect, Target: "/shop"}
	}
	return Decision{Action: Allow}
}

// Middleware applies Decide to every page route it wraps. API and asset
// routes are mounted outside of it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasToken := false
		if cookie, err := r.Cookie(session.TokenCookieName); err == nil && cookie.Value != "" {
			hasToken = true
		}

		decision := Decide(r.URL.Path, hasToken)
		if decision.Action == Redirect {
			http.Redirect(w, r, decision.Target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
