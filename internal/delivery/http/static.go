package http

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"time"
)

const landingPage = "/static/index.html"

//go:embed static
var staticFiles embed.FS

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

// indexHandler serves the landing page at its full path. http.FileServer
// would redirect /index.html to the directory.
func indexHandler() http.HandlerFunc {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(page))
	}
}

func redirectToLandingPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, landingPage, http.StatusTemporaryRedirect)
}
