package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/utils"
	"github.com/bunpo-app/bunpo/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)

	record, err := h.records.GetRecord(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error getting user record")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, record, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing user record response")
	}
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var record models.UserRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// A client may only create its own record.
	tokenUserID, _ := utils.GetUserIDFromContext(ctx)
	if record.UserID != tokenUserID {
		log.Err(ErrRecordOwnerMismatch).
			Int64("record_user_id", record.UserID).
			Int64("token_user_id", tokenUserID).
			Send()
		http.Error(w, ErrRecordOwnerMismatch.Error(), http.StatusForbidden)
		return
	}

	created, err := h.records.CreateRecord(ctx, record)
	if err != nil {
		log.Err(err).Int64("user_id", record.UserID).Msg("error creating user record")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	h.hub.broadcast(created.UserID, models.RecordEvent{
		Exists:    true,
		Favorites: created.Favorites,
		Modified:  created.FavoritesLastModified,
	})

	if _, err := utils.WriteJSON(w, created, http.StatusCreated); err != nil {
		log.Err(err).Msg("error writing created record response")
	}
}

func (h *Handler) putFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)

	var payload models.Timestamped
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.records.UpdateFavorites(ctx, userID, payload.Favorites, payload.Modified)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error updating favorites")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	h.hub.broadcast(userID, models.RecordEvent{
		Exists:    true,
		Favorites: updated.Favorites,
		Modified:  updated.FavoritesLastModified,
	})

	if _, err := utils.WriteJSON(w, updated, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing updated record response")
	}
}
