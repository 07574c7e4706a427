package handlers

import (
	"mime"
	"net/http"

	"github.com/contactbook/engine/internal/api/middleware"
	"github.com/contactbook/engine/internal/api/types"
	"github.com/contactbook/engine/internal/services"
)

type CategoriesHandler struct {
	categories services.CategoryService
}

func NewCategoriesHandler(categories services.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// List godoc
// @Summary  List categories in creation order
// @Tags     categories
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} models.Category
// @Router   /api/categories [get]
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create godoc
// @Summary  Create a category
// @Description Accepts a JSON body, or the name and color query parameters.
// @Tags     categories
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body  body  types.CategoryCreateRequest false "category"
// @Param    name  query string false "category name"
// @Param    color query string false "hex colour" default(#008CBA)
// @Success  201 {object} models.Category
// @Failure  400 {object} types.APIResponse
// @Router   /api/categories [post]
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := types.CategoryCreateRequest{
		Name:  r.URL.Query().Get("name"),
		Color: r.URL.Query().Get("color"),
	}
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" && r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	c, err := h.categories.Create(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.Color)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Delete godoc
// @Summary  Delete a category
// @Description Contacts filed under the category keep their category string.
// @Tags     categories
// @Security BearerAuth
// @Param    id path string true "category id"
// @Success  204
// @Failure  404 {object} types.APIResponse
// @Router   /api/categories/{id} [delete]
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.categories.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
