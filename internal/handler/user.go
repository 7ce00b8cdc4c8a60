package handler

import (
	"net/http"

	"github.com/wellnest/wellnest-api/internal/middleware"
)

// Me returns the profile of the authenticated user.
func Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondMessage(w, http.StatusUnauthorized, "not authorised")
		return
	}

	respondJSON(w, http.StatusOK, map[string]UserResponse{
		"user": newUserResponse(user),
	})
}

// Health reports service liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
