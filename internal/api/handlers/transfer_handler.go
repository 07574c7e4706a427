package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contactbook/engine/internal/api/middleware"
	"github.com/contactbook/engine/internal/api/types"
	"github.com/contactbook/engine/internal/services"
	"github.com/contactbook/engine/internal/transfer"
	appErr "github.com/contactbook/engine/pkg/errors"
)

const (
	maxImportBytes  = 10 << 20
	multipartMemory = 8 << 20
)

type TransferHandler struct {
	transfer services.TransferService
}

func NewTransferHandler(transfer services.TransferService) *TransferHandler {
	return &TransferHandler{transfer: transfer}
}

// Import godoc
// @Summary  Bulk import contacts
// @Description Contacts whose name already exists for the user, ignoring case, are skipped.
// @Tags     contacts
// @Accept   mpfd
// @Produce  json
// @Security BearerAuth
// @Param    format path     string true "json or csv"
// @Param    file   formData file   true "document to import"
// @Success  200 {object} types.ImportResponse
// @Failure  400 {object} types.APIResponse
// @Router   /api/contacts/import/{format} [post]
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, _, err := readUpload(w, r, maxImportBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.transfer.Import(r.Context(), middleware.GetUserID(r.Context()), format, data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ImportResponse{
		Message:       fmt.Sprintf("Imported %d contacts", n),
		ImportedCount: n,
	})
}

// Export godoc
// @Summary  Download every contact as an attachment
// @Tags     contacts
// @Produce  json
// @Produce  text/csv
// @Security BearerAuth
// @Param    format path string true "json or csv"
// @Success  200 {file} file
// @Router   /api/contacts/export/{format} [get]
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Buffered so a failure can still produce a JSON error response.
	var buf bytes.Buffer
	if err := h.transfer.Export(r.Context(), middleware.GetUserID(r.Context()), format, &buf); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+format.Filename())
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func formatParam(r *http.Request) (transfer.Format, error) {
	f, ok := transfer.ParseFormat(chi.URLParam(r, "format"))
	if !ok {
		return "", appErr.New(appErr.CodeNotFound, "unsupported format")
	}
	return f, nil
}

// readUpload returns the contents and declared content type of the multipart
// field "file".
func readUpload(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, string, error) {
	// Room for the multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, "", appErr.Wrap(err, appErr.CodeInvalid, "expected a multipart form with a file field")
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, "", appErr.Wrap(err, appErr.CodeInvalid, "missing file field")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, "", appErr.Wrap(err, appErr.CodeInvalid, "read upload failed")
	}
	if int64(len(data)) > limit {
		return nil, "", appErr.New(appErr.CodeInvalid, "file too large")
	}
	return data, hdr.Header.Get("Content-Type"), nil
}
