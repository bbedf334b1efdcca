package server

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the compiled calendar frontend. Unknown /api paths always
// get a problem document; any other unknown path gets index.html so the
// frontend router can resolve it. Without a usable directory the server runs
// API only.
func (s *Server) mountStatic() {
	index := s.frontendIndex()

	s.engine.NoRoute(func(c *gin.Context) {
		if index == "" || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			notFound(c, "endpoint not found")
			return
		}
		c.File(index)
	})
	if index == "" {
		return
	}
	s.engine.GET("/", func(c *gin.Context) { c.File(index) })

	if dir := filepath.Join(s.staticDir, "assets"); isDir(dir) {
		s.engine.StaticFS("/assets", gin.Dir(dir, false))
	}
	if favicon := filepath.Join(s.staticDir, "favicon.ico"); fileExists(favicon) {
		s.engine.StaticFile("/favicon.ico", favicon)
	}
}

// frontendIndex returns the path of index.html, or "" when there is nothing to serve.
func (s *Server) frontendIndex() string {
	if s.staticDir == "" {
		s.logger.Warn("static directory not configured; API only mode")
		return ""
	}
	if !isDir(s.staticDir) {
		s.logger.Warn("static directory missing; API only mode", slog.String("path", s.staticDir))
		return ""
	}
	index := filepath.Join(s.staticDir, "index.html")
	if !fileExists(index) {
		s.logger.Warn("index.html not found; API only mode", slog.String("path", index))
		return ""
	}
	return index
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
