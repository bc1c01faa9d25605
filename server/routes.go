package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires the game API onto rg.
func registerRoutes(rg gin.IRouter, h *handlers) {
	rg.GET("/start", h.start)
	rg.GET("/question/:id", h.question)
	rg.GET("/question/:id/answer/:answer", h.answer)
	rg.GET("/healthz", h.healthz)
}

// staticFallback serves the single-page frontend from dir: existing files as
// they are, every other GET path as index.html. API misses stay JSON 404s.
func staticFallback(dir string) gin.HandlerFunc {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}
	index := filepath.Join(root, "index.html")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/question/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		name := filepath.Join(root, filepath.FromSlash(filepath.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}
