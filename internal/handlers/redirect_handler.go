package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Varun5711/hashlink/internal/enrichment"
	"github.com/Varun5711/hashlink/internal/events"
	"github.com/Varun5711/hashlink/internal/logger"
	"github.com/Varun5711/hashlink/internal/middleware"
	"github.com/Varun5711/hashlink/internal/service"
	"github.com/Varun5711/hashlink/internal/storage"
)

type ClickPublisher interface {
	Publish(ctx context.Context, event *events.ClickEvent) error
}

type RedirectHandler struct {
	links     *service.LinkService
	publisher ClickPublisher
	log       *logger.Logger
}

// NewRedirectHandler builds the redirect endpoint. publisher may be nil.
func NewRedirectHandler(links *service.LinkService, publisher ClickPublisher, log *logger.Logger) *RedirectHandler {
	return &RedirectHandler{
		links:     links,
		publisher: publisher,
		log:       log,
	}
}

func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		http.NotFound(w, r)
		return
	}

	link, err := h.links.Resolve(r.Context(), code)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.log.Error("Failed to resolve %s: %v", code, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if h.publisher != nil {
		ua := enrichment.ParseUserAgent(r.UserAgent())
		event := &events.ClickEvent{
			Code:       code,
			LinkID:     link.ID,
			Timestamp:  time.Now().Unix(),
			IP:         middleware.ClientIP(r),
			UserAgent:  r.UserAgent(),
			Referer:    r.Referer(),
			Browser:    ua.Browser,
			OS:         ua.OS,
			DeviceType: ua.DeviceType,
		}
		if err := h.publisher.Publish(r.Context(), event); err != nil {
			h.log.Warn("Failed to publish click event: %v", err)
		}
	}

	http.Redirect(w, r, link.LongURL, http.StatusFound)
}
