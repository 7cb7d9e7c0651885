package http

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

// The gateway serves a minimal shell per page; the client script hydrates it
// from the /api endpoints. What matters server-side is that these routes sit
// behind the route gate.
var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>TechNest — {{.Title}}</title>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body data-page="{{.Page}}">
<div id="app"></div>
<script src="/assets/app.js"></script>
</body>
</html>
`))

type pageData struct {
	Title string
	Page  string
}

var pages = map[string]string{
	"/":                "Home",
	"/shop":            "Shop",
	"/cart":            "Cart",
	"/wishlist":        "Wishlist",
	"/checkout":        "Checkout",
	"/orders":          "Orders",
	"/profile":         "Profile",
	"/login":           "Login",
	"/register":        "Register",
	"/forgot-password": "Forgot Password",
	"/reset-password":  "Reset Password",
}

func PageHandler(w http.ResponseWriter, r *http.Request) {
	title, ok := pages[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, pageData{Title: title, Page: r.URL.Path})
	if err != nil {
		log.Error().Err(err).Msg("render page shell")
	}
}
