package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/catalog"
	"github.com/cooklang/cookcli-sub000/internal/cooklang"
	"github.com/cooklang/cookcli-sub000/internal/render"
	"github.com/cooklang/cookcli-sub000/internal/service"
	"github.com/cooklang/cookcli-sub000/internal/shopping"
)

func (s *Server) handleRecipeTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.index.Tree()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

type recipeResponse struct {
	render.RecipeView
	Path     string                `json:"path"`
	Warnings []cooklang.Diagnostic `json:"warnings,omitempty"`
}

func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(chi.URLParam(r, "*"), "/")
	if path == "" || containsDotDot(path) {
		s.writeError(w, r, badRequest("invalid recipe path %q", path))
		return
	}
	scale := 1.0
	if raw := r.URL.Query().Get("scale"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, r, badRequest("%v: %q", shopping.ErrInvalidScale, raw))
			return
		}
		scale = v
	}

	entry, err := catalog.GetRecipe([]string{s.opts.BasePath}, path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	content, err := entry.Content()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	recipe, report := cooklang.Parse(content)
	if report.HasErrors() {
		s.writeError(w, r, badRequest("%v: %s", shopping.ErrParse, report.Errors()[0]))
		return
	}
	recipe.Scale(scale)
	s.log.Debug("serving recipe", zap.String("path", entry.Path), zap.Float64("scale", scale))

	writeJSON(w, http.StatusOK, recipeResponse{
		RecipeView: render.RecipeView{Name: entry.Name, Scale: scale, Recipe: recipe},
		Path:       path,
		Warnings:   report.Warnings(),
	})
}

func containsDotDot(p string) bool {
	for _, part := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		s.writeError(w, r, badRequest("query parameter q is required"))
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, badRequest("invalid limit %q", raw))
			return
		}
		limit = n
	}
	results, err := service.SearchRecipes(s.opts.BasePath, q, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
