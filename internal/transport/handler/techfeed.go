package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/onk/blogchecker/internal/infrastructure"
	"github.com/onk/blogchecker/internal/model"
	"github.com/onk/blogchecker/internal/repository"
	"github.com/onk/blogchecker/internal/transport/response"
)

// TechFeedRunner runs the filter pipeline for one site
type TechFeedRunner interface {
	Run(ctx context.Context, site model.Site) ([]model.FilteredEntry, error)
}

type TechFeedHandler struct {
	runner TechFeedRunner
	logger *logrus.Logger
}

func NewTechFeedHandler(runner TechFeedRunner, logger *logrus.Logger) *TechFeedHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TechFeedHandler{
		runner: runner,
		logger: logger,
	}
}

// ServeHTTP handles GET ?url=<site>&kind=<kind> and writes the technical
// entries of the site's feed as a JSON array.
func (h *TechFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := infrastructure.RequestLogger(r.Context(), h.logger)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		response.WriteMethodNotAllowed(w, "only GET is supported")
		return
	}

	site, err := siteFromQuery(r.URL.Query())
	if err != nil {
		logger.WithError(err).Warn("Rejected tech feed request")
		response.WriteBadRequest(w, err.Error())
		return
	}

	log := logger.WithFields(logrus.Fields{"site": site.URL, "kind": site.Kind})
	log.Info("Tech feed request started")

	entries, err := h.runner.Run(r.Context(), site)
	if err != nil {
		status := writeRunError(w, err)
		entry := log.WithError(err).WithField("status", status)
		if status >= http.StatusInternalServerError {
			entry.Error("❌ Tech feed request failed")
		} else {
			entry.Warn("Tech feed request failed")
		}
		return
	}

	log.WithField("entries", len(entries)).Info("✅ Tech feed request completed")
	response.WriteEntries(w, entries)
}

func siteFromQuery(query url.Values) (model.Site, error) {
	raw := query.Get("url")
	if raw == "" {
		return model.Site{}, errors.New("url parameter is required")
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return model.Site{}, errors.New("url parameter must be an absolute http(s) URL")
	}

	return model.Site{
		Kind: model.ParseKind(query.Get("kind")),
		URL:  raw,
	}, nil
}

// writeRunError writes the error response for a failed pipeline run and
// returns the status it used
func writeRunError(w http.ResponseWriter, err error) int {
	message := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		response.WriteGatewayTimeout(w, message)
		return http.StatusGatewayTimeout
	case errors.Is(err, model.ErrConfiguration):
		response.WriteUnprocessable(w, message)
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrParse), repository.IsFetchFailure(err):
		response.WriteBadGateway(w, message)
		return http.StatusBadGateway
	default:
		response.WriteInternalError(w, message)
		return http.StatusInternalServerError
	}
}
