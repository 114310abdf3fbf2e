package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/service"
	"github.com/cooklang/cookcli-sub000/internal/shopping"
)

type shoppingListResponse struct {
	Categories []shopping.Category `json:"categories"`
	InPantry   []string            `json:"in_pantry"`
}

// handleShoppingList aggregates a JSON array of "name[:scale]" specs. Aisle
// and pantry files are re-read on every request.
func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	var specs []string
	if err := decodeJSON(r, &specs); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(specs) == 0 {
		s.writeError(w, r, badRequest("at least one recipe is required"))
		return
	}

	conf, _, err := service.LoadAisle(s.opts.AislePath, s.opts.BasePath, s.log)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, _, err := service.LoadPantry(s.opts.PantryPath, s.opts.BasePath, s.log)
	if err != nil {
		s.log.Warn("ignoring unreadable pantry", zap.Error(err))
		p = nil
	}

	res, err := service.BuildShoppingList(s.resolver, service.ShoppingListRequest{
		Specs:    specs,
		BasePath: s.opts.BasePath,
		Aisle:    conf,
		Pantry:   p,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.shoppingLists.Inc()

	out := shoppingListResponse{Categories: res.Categories, InPantry: res.InPantry}
	if out.Categories == nil {
		out.Categories = []shopping.Category{}
	}
	if out.InPantry == nil {
		out.InPantry = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := service.ListShoppingListItems(s.db)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var in service.AddShoppingListItemInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(in); err != nil {
		s.writeError(w, r, badRequest("%v", err))
		return
	}
	item, err := service.AddShoppingListItem(s.db, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// handleRemoveItems removes the first item for ?path=, or clears the whole
// list when no path is given.
func (s *Server) handleRemoveItems(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	var err error
	if path == "" {
		err = service.ClearShoppingList(s.db)
	} else {
		err = service.RemoveShoppingListItemByPath(s.db, path)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := service.RemoveShoppingListItem(s.db, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListChecked(w http.ResponseWriter, r *http.Request) {
	checked, err := service.ListCheckedIngredients(s.db)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checked)
}

type checkRequest struct {
	Name    string `json:"name" validate:"required"`
	Checked bool   `json:"checked"`
}

func (s *Server) handleSetChecked(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, badRequest("%v", err))
		return
	}
	if err := service.SetIngredientChecked(s.db, req.Name, req.Checked); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
