package http

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	appweb "github.com/coinop-logan/personal-finance-display/web"
)

// ResolveSiteFS picks the static site source: siteDir on disk when that
// directory exists, otherwise the embedded default bundle.
func ResolveSiteFS(siteDir string) fs.FS {
	if info, err := os.Stat(siteDir); err == nil && info.IsDir() {
		slog.Info("Serving static site from disk", "site_dir", siteDir)
		return os.DirFS(siteDir)
	}

	sub, err := fs.Sub(appweb.DistFS, "dist")
	if err != nil {
		// The bundle is compiled in; a bad sub path is a build defect.
		panic("embedded site bundle missing: " + err.Error())
	}
	slog.Info("Serving embedded static site")
	return sub
}

// handleSite serves static assets. Any GET that does not name an
// existing file falls back to the SPA entry document so client-side
// routes resolve. Non-GET requests outside /api/ are unknown paths.
func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" || name == "." || !fs.ValidPath(name) {
		name = "index.html"
	}
	if info, err := fs.Stat(s.site, name); err != nil || info.IsDir() {
		name = "index.html"
	}

	http.ServeFileFS(w, r, s.site, name)
}
