package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cooklang/cookcli-sub000/internal/app"
	"github.com/cooklang/cookcli-sub000/internal/pantry"
	"github.com/cooklang/cookcli-sub000/internal/service"
)

var errPantryItemNotFound = errors.New("pantry item not found")

type pantryItemRequest struct {
	Section  string `json:"section" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity"`
	Low      string `json:"low"`
	Bought   string `json:"bought"`
	Expire   string `json:"expire"`
	Note     string `json:"note"`
}

func (req pantryItemRequest) item() pantry.Item {
	return pantry.Item{
		Name:     strings.TrimSpace(req.Name),
		Quantity: strings.TrimSpace(req.Quantity),
		Low:      strings.TrimSpace(req.Low),
		Bought:   strings.TrimSpace(req.Bought),
		Expire:   strings.TrimSpace(req.Expire),
		Note:     strings.TrimSpace(req.Note),
	}
}

// loadPantry returns the pantry and the file it lives in. Without a pantry
// file the pantry is empty and edits create <base>/config/pantry.conf.
func (s *Server) loadPantry() (*pantry.Pantry, string, error) {
	p, path, err := service.LoadPantry(s.opts.PantryPath, s.opts.BasePath, s.log)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		p = &pantry.Pantry{Sections: []pantry.Section{}}
		path = s.opts.PantryPath
		if path == "" {
			path = filepath.Join(app.LocalConfigDir(s.opts.BasePath), app.PantryFileName)
		}
	}
	return p, path, nil
}

func (s *Server) savePantry(p *pantry.Pantry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create pantry directory: %w", err)
	}
	if err := p.Save(path); err != nil {
		return err
	}
	s.metrics.pantryWrites.Inc()
	return nil
}

func (s *Server) handlePantry(w http.ResponseWriter, r *http.Request) {
	p, _, err := s.loadPantry()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAddPantryItem(w http.ResponseWriter, r *http.Request) {
	var req pantryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, badRequest("%v", err))
		return
	}

	s.pantryMu.Lock()
	defer s.pantryMu.Unlock()
	p, path, err := s.loadPantry()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	item := req.item()
	p.Set(strings.TrimSpace(req.Section), item)
	if err := s.savePantry(p, path); err != nil {
		s.writeError(w, r, err)
		return
	}
	item.Section = strings.TrimSpace(req.Section)
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdatePantryItem(w http.ResponseWriter, r *http.Request) {
	section, name := chi.URLParam(r, "section"), chi.URLParam(r, "name")
	var req pantryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Section, req.Name = section, name

	s.pantryMu.Lock()
	defer s.pantryMu.Unlock()
	p, path, err := s.loadPantry()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !p.Remove(section, name) {
		s.writeError(w, r, fmt.Errorf("%w: [%s] %s", errPantryItemNotFound, section, name))
		return
	}
	item := req.item()
	p.Set(section, item)
	if err := s.savePantry(p, path); err != nil {
		s.writeError(w, r, err)
		return
	}
	item.Section = section
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleRemovePantryItem(w http.ResponseWriter, r *http.Request) {
	section, name := chi.URLParam(r, "section"), chi.URLParam(r, "name")

	s.pantryMu.Lock()
	defer s.pantryMu.Unlock()
	p, path, err := s.loadPantry()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !p.Remove(section, name) {
		s.writeError(w, r, fmt.Errorf("%w: [%s] %s", errPantryItemNotFound, section, name))
		return
	}
	if err := s.savePantry(p, path); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDepleted(w http.ResponseWriter, r *http.Request) {
	p, _, err := s.loadPantry()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items := p.Depleted(r.URL.Query().Get("all") == "true")
	if items == nil {
		items = []pantry.DepletedItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleExpiring(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, badRequest("invalid days %q", raw))
			return
		}
		days = n
	}
	p, _, err := s.loadPantry()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items := p.Expiring(time.Now(), days, r.URL.Query().Get("include_unknown") == "true")
	if items == nil {
		items = []pantry.ExpiringItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
