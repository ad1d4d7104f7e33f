package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/logger"
)

const (
	defaultBase  = "../client"
	cacheControl = "public, max-age=3600"
	indexFile    = "index.html"
)

// FileHandler serves the files under its base directory.
//
// The base is "../client" relative to the configuration document,
// unless the document's "_base" overrides it.
// A directory redirects to its index.html; anything missing is a 404.
type FileHandler struct {
	base string
	log  logger.Logger
}

func NewFileHandler(log logger.Logger) *FileHandler {
	if log == nil {
		log = logger.New()
	}

	return &FileHandler{base: defaultBase, log: log}
}

// Setup resolves the base directory against cfg.
func (h *FileHandler) Setup(cfg *config.Config) error {
	base := defaultBase
	if cfg.Base != "" {
		base = cfg.Base
	}

	h.base = cfg.Resolve(base)
	h.log.Debug("static base: "+h.base, nil)
	return nil
}

// Base is the directory files are served from.
func (h *FileHandler) Base() string { return h.base }

func (h *FileHandler) Action(name string) (http.HandlerFunc, bool) {
	if name != "request" {
		return nil, false
	}

	return h.ServeHTTP, true
}

func (h *FileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	fp := filepath.Join(h.base, filepath.FromSlash(name))

	f, err := os.Open(fp)
	if err != nil {
		notFound(w)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		notFound(w)
		return
	}

	if stat.IsDir() {
		http.Redirect(w, r, path.Join(name, indexFile), http.StatusMovedPermanently)
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), f)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
}
