package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/contactbook/engine/internal/api/types"
	appErr "github.com/contactbook/engine/pkg/errors"
)

func writeError(w http.ResponseWriter, status int, code appErr.Code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.APIResponse{Success: false, Error: &types.APIError{Code: string(code), Message: msg}})
}
