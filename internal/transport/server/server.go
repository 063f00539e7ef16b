package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/onk/blogchecker/internal/application"
	"github.com/onk/blogchecker/internal/monitoring"
	"github.com/onk/blogchecker/internal/transport/middleware"
	"github.com/onk/blogchecker/internal/transport/response"
)

// Version is reported by the health check
var Version = "dev"

// NewRouter routes the tech feed trigger, health check and metrics
func NewRouter(app *application.Application) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Logging(app.Logger))

	r.HandleFunc("/healthz", healthCheck).Methods("GET")
	r.Handle("/metrics", monitoring.Handler()).Methods("GET")
	r.Handle("/entries", app.TechFeedHandler)
	r.Handle("/", app.TechFeedHandler) // Default to the tech feed trigger

	return r
}

// CreateHandler creates the main HTTP handler for the application
func CreateHandler() (http.Handler, func(), error) {
	app, err := application.New(context.Background())
	if err != nil {
		logrus.WithError(err).Error("Error creating application")
		return nil, nil, err
	}

	cleanup := func() {
		if err := app.Close(); err != nil {
			app.Logger.WithError(err).Warn("Error closing application")
		}
	}

	return NewRouter(app), cleanup, nil
}

var (
	sharedMu      sync.Mutex
	sharedHandler http.Handler
)

// handlerForProcess creates the handler on first use and keeps it for the
// life of the process so the compiled matcher is reused across requests.
// A failed creation is retried on the next request.
func handlerForProcess() (http.Handler, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedHandler != nil {
		return sharedHandler, nil
	}

	// The cleanup is dropped on purpose: the application, including its
	// storage client, lives until the function instance exits.
	handler, _, err := CreateHandler()
	if err != nil {
		return nil, err
	}
	sharedHandler = handler
	return handler, nil
}

// HandleRequest handles a single HTTP request (for Cloud Functions)
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	handler, err := handlerForProcess()
	if err != nil {
		logrus.WithError(err).Error("Failed to create handler")
		response.WriteInternalError(w, "Internal server error")
		return
	}

	handler.ServeHTTP(w, r)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}
