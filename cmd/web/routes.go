package main

import "net/http"

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	standard := func(next http.Handler) http.Handler {
		return app.recoverPanic(app.logAndTraceRequest(secureHeaders(app.timeout(next))))
	}

	mux.Handle("GET /recommendations/workout/{userID}",
		standard(http.HandlerFunc(app.recommendationsGET)))
	mux.Handle("GET /api/healthy", standard(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /{$}", standard(http.HandlerFunc(app.home)))

	return mux
}
