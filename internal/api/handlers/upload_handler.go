package handlers

import (
	"net/http"

	"github.com/contactbook/engine/internal/api/middleware"
	"github.com/contactbook/engine/internal/api/types"
	"github.com/contactbook/engine/internal/services"
	"github.com/contactbook/engine/internal/storage"
)

type UploadHandler struct {
	pictures services.PictureService
	maxBytes int64
}

// NewUploadHandler caps request bodies at maxBytes; zero falls back to the
// import limit. The picture service applies its own size policy.
func NewUploadHandler(pictures services.PictureService, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = maxImportBytes
	}
	return &UploadHandler{pictures: pictures, maxBytes: maxBytes}
}

// ProfilePicture godoc
// @Summary  Upload a profile picture
// @Description Returns a URL to store in a contact's profile_picture field.
// @Tags     uploads
// @Accept   mpfd
// @Produce  json
// @Security BearerAuth
// @Param    file formData file true "image"
// @Success  200 {object} types.UploadResponse
// @Failure  400 {object} types.APIResponse
// @Router   /api/upload-profile-picture [post]
func (h *UploadHandler) ProfilePicture(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := readUpload(w, r, h.maxBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var filename string
	if r.MultipartForm != nil {
		if fh := r.MultipartForm.File["file"]; len(fh) > 0 {
			filename = fh[0].Filename
		}
	}

	url, err := h.pictures.Upload(r.Context(), middleware.GetUserID(r.Context()), storage.Picture{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.UploadResponse{URL: url})
}
