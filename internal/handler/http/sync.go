package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/utils"
	"github.com/MKhiriev/go-doc-sync/models"
)

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subject, found := subjectFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sync").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var syncRequest models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.SyncCoordinator.GetSyncResponse(ctx, subject, syncRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sync").Str("collection", syncRequest.Collection).Msg("error computing sync page")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// subjectFromContext rebuilds the authenticated subject placed in the
// request context by the auth middleware.
func subjectFromContext(ctx context.Context) (models.Subject, bool) {
	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		return models.Subject{}, false
	}

	groupIDs, _ := utils.GetGroupIDsFromContext(ctx)

	return models.Subject{UserID: userID, GroupIDs: groupIDs}, true
}
