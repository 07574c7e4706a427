package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contactbook/engine/internal/api/middleware"
	"github.com/contactbook/engine/internal/api/types"
	appErr "github.com/contactbook/engine/pkg/errors"
	"github.com/contactbook/engine/pkg/logger"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError derives the status from the error code. Server-side failures are
// logged with the request id since their detail is withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := types.HTTPStatus(appErr.CodeOf(err))
	if status >= http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, status, types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return appErr.New(appErr.CodeInvalid, "request body is empty")
	default:
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid json: "+err.Error())
	}
}

// pathID parses a URL id parameter. Anything unparsable cannot name an
// existing row, so it is reported as not found.
func pathID(r *http.Request, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, appErr.New(appErr.CodeNotFound, entity+" not found")
	}
	return id, nil
}
