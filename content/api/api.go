package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/ldisk/gatehouse/content"
)

// AsHandler exposes every asset under the library root. Directory paths
// fall back to their index.html. Routes with their own logic (the status
// endpoint and the visit tracker) are registered explicitly, everything
// else funnels through the catch-all asset handler.
func AsHandler(ctx context.Context, lib *content.Library) http.Handler {
	router := httprouter.New()
	router.GET("/.status", status(lib))
	router.GET("/g/:id", trackVisit())

	// delegate to the asset handler if no explicit route matched
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveAsset(lib, w, r)
	})
	return router
}

func serveAsset(lib *content.Library, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	assetPath := r.URL.Path
	if strings.HasSuffix(assetPath, "/") {
		assetPath += "index.html"
	}
	buf, mt, etag, err := lib.Asset(r.Context(), assetPath)
	if err != nil {
		var notFound content.AssetNotFound
		if errors.As(err, &notFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "unable to fetch desired asset, server is mis-behaving", http.StatusInternalServerError)
		return
	}
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	// TypeByExtension already tags common text types with a charset
	if utf8.Valid(buf) && !strings.Contains(mt, "charset") {
		w.Header().Add("Content-Type", mt+"; charset=utf-8")
	} else {
		w.Header().Add("Content-Type", mt)
	}
	w.Header().Add("Content-Length", strconv.Itoa(len(buf)))
	w.Header().Add("ETag", etag)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	w.Write(buf)
}

func status(lib *content.Library) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Add("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"root":   lib.Root(),
		})
	}
}
