package handler

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded page assets. Directory listings are
// never served.
type StaticHandler struct {
	files      fs.FS
	fileServer http.Handler
}

func NewStaticHandler(files fs.FS) *StaticHandler {
	return &StaticHandler{
		files:      files,
		fileServer: http.FileServer(http.FS(files)),
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Get the wildcard path from Chi router context
	name := chi.URLParam(r, "*")
	if name == "" {
		name = strings.TrimPrefix(r.URL.Path, "/")
	}
	name = strings.TrimPrefix(path.Clean("/"+name), "/")

	info, err := fs.Stat(h.files, name)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	req := r.Clone(r.Context())
	req.URL.Path = "/" + name
	h.fileServer.ServeHTTP(w, req)
}

// StaticFileServer serves the assets compiled into the binary.
func StaticFileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return NewStaticHandler(sub)
}
