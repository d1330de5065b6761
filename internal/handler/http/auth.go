package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/utils"
)

// tokenRequest is the body of POST /api/auth/token. The user identity itself
// is established by the identity provider before the app process starts; this
// endpoint only exchanges the opaque user ID for a short-lived JWT the sync
// endpoints accept.
type tokenRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.UserID <= 0 {
		log.Error().Int64("user_id", req.UserID).Msg("invalid user ID")
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	token, err := utils.GenerateJWTToken(h.app.TokenIssuer, req.UserID, h.app.TokenDuration, h.app.TokenSignKey)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("user_id", req.UserID).Msg("token issued")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}
