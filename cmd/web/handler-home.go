package main

import "net/http"

// home responds with a plain liveness banner.
func (app *application) home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("HeronFit Recommendation Engine is running!"))
}
