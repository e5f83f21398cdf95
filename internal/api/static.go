package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the landing page and the public asset directory.
type StaticHandler struct {
	publicDir string
	viewsDir  string
}

func NewStaticHandler(publicDir, viewsDir string) *StaticHandler {
	return &StaticHandler{publicDir: publicDir, viewsDir: viewsDir}
}

// Index serves views/index.html.
func (h *StaticHandler) Index(c *gin.Context) {
	index := filepath.Join(h.viewsDir, "index.html")
	if !isFile(index) {
		_ = c.Error(NewHTTPError(http.StatusNotFound, "not found"))
		return
	}
	c.File(index)
}

// NoRoute serves a public asset matching the path, or answers 404.
func (h *StaticHandler) NoRoute(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		if file, ok := h.publicFile(c.Request.URL.Path); ok {
			c.File(file)
			return
		}
	}
	_ = c.Error(NewHTTPError(http.StatusNotFound, "not found"))
}

// publicFile maps a URL path into publicDir. Cleaning against "/" keeps
// ".." from escaping the directory.
func (h *StaticHandler) publicFile(urlPath string) (string, bool) {
	if h.publicDir == "" {
		return "", false
	}
	rel := path.Clean("/" + urlPath)
	if rel == "/" {
		return "", false
	}
	file := filepath.Join(h.publicDir, filepath.FromSlash(rel))
	return file, isFile(file)
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
