package handlers

import (
	"net/http"

	"github.com/contactbook/engine/internal/api/middleware"
	"github.com/contactbook/engine/internal/api/types"
	"github.com/contactbook/engine/internal/services"
)

type ContactsHandler struct {
	contacts services.ContactService
}

func NewContactsHandler(contacts services.ContactService) *ContactsHandler {
	return &ContactsHandler{contacts: contacts}
}

// List godoc
// @Summary  List contacts
// @Tags     contacts
// @Produce  json
// @Security BearerAuth
// @Param    search   query string false "case-insensitive name substring"
// @Param    category query string false "exact category"
// @Param    sort_by  query string false "name, created_at or updated_at" default(name)
// @Success  200 {array}  models.Contact
// @Failure  400 {object} types.APIResponse
// @Router   /api/contacts [get]
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.contacts.List(r.Context(), middleware.GetUserID(r.Context()), services.ContactQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		SortBy:   q.Get("sort_by"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create godoc
// @Summary  Create a contact
// @Tags     contacts
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body services.ContactDraft true "contact"
// @Success  201 {object} models.Contact
// @Failure  400 {object} types.APIResponse
// @Router   /api/contacts [post]
func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft services.ContactDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.contacts.Create(r.Context(), middleware.GetUserID(r.Context()), draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Get godoc
// @Summary  Get a contact
// @Tags     contacts
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "contact id"
// @Success  200 {object} models.Contact
// @Failure  404 {object} types.APIResponse
// @Router   /api/contacts/{id} [get]
func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.contacts.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Update godoc
// @Summary  Partially update a contact
// @Description Fields present in the body replace stored values, null included.
// @Tags     contacts
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "contact id"
// @Param    body body types.ContactPatchRequest true "fields to change"
// @Success  200 {object} models.Contact
// @Failure  400 {object} types.APIResponse
// @Failure  404 {object} types.APIResponse
// @Router   /api/contacts/{id} [put]
func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.ContactPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.contacts.Update(r.Context(), middleware.GetUserID(r.Context()), id, req.Patch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete godoc
// @Summary  Delete a contact
// @Tags     contacts
// @Security BearerAuth
// @Param    id path string true "contact id"
// @Success  204
// @Failure  404 {object} types.APIResponse
// @Router   /api/contacts/{id} [delete]
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.contacts.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
