package main

import (
	"net/http"

	"github.com/skypiea-tech/heronfit-recommendation-service/internal/errors"
	"github.com/skypiea-tech/heronfit-recommendation-service/internal/recommend"
)

// recommendationsGET serves the workout template recommendations for a
// user. An unknown user id is a valid cold-start state and still yields
// 200; only data store failures produce an error status.
func (app *application) recommendationsGET(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		http.NotFound(w, r)
		return
	}

	recommendations, err := app.recommender.WorkoutRecommendations(r.Context(), userID)
	if err != nil {
		if errors.Is(err, recommend.ErrDataUnavailable) {
			app.serviceUnavailable(w, r, err)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, recommendations)
}
