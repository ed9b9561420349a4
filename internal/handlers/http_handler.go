package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Varun5711/hashlink/internal/hashids"
	"github.com/Varun5711/hashlink/internal/logger"
	"github.com/Varun5711/hashlink/internal/models"
	"github.com/Varun5711/hashlink/internal/service"
)

const maxBodyBytes = 1 << 20

type StatsReader interface {
	Get(ctx context.Context, code string) (*models.LinkStats, error)
}

type HTTPHandler struct {
	codec *service.CodecService
	links *service.LinkService
	stats StatsReader
	log   *logger.Logger
}

func NewHTTPHandler(codec *service.CodecService, links *service.LinkService, log *logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		codec: codec,
		links: links,
		log:   log,
	}
}

func (h *HTTPHandler) Encode(w http.ResponseWriter, r *http.Request) {
	var req models.EncodeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: numbers must be unsigned 32-bit integers")
		return
	}

	hash, err := h.codec.Encode(req.Numbers)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, models.EncodeResponse{Hash: hash})
}

func (h *HTTPHandler) Decode(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")

	numbers, err := h.codec.Decode(r.Context(), hash)
	if errors.Is(err, hashids.ErrInvalidHash) {
		respondError(w, http.StatusBadRequest, "invalid hash")
		return
	}
	if err != nil {
		h.log.Error("Failed to decode %q: %v", hash, err)
		respondError(w, http.StatusInternalServerError, "failed to decode hash")
		return
	}

	respondJSON(w, http.StatusOK, models.DecodeResponse{Hash: hash, Numbers: numbers})
}

func (h *HTTPHandler) EncodeHex(w http.ResponseWriter, r *http.Request) {
	var req models.HexRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Hex == "" {
		respondError(w, http.StatusBadRequest, "hex is required")
		return
	}

	hash, err := h.codec.EncodeHex(req.Hex)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, models.HexResponse{Hash: hash, Hex: req.Hex})
}

func (h *HTTPHandler) DecodeHex(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")

	hex, err := h.codec.DecodeHex(hash)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid hash")
		return
	}

	respondJSON(w, http.StatusOK, models.HexResponse{Hash: hash, Hex: hex})
}

func (h *HTTPHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLinkRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.LongURL == "" {
		respondError(w, http.StatusBadRequest, "long_url is required")
		return
	}

	var ttl time.Duration
	if req.TTL != "" {
		d, err := time.ParseDuration(req.TTL)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid ttl")
			return
		}
		ttl = d
	}

	link, err := h.links.Shorten(r.Context(), req.LongURL, ttl)
	if errors.Is(err, service.ErrInvalidURL) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Error("Failed to shorten %s: %v", req.LongURL, err)
		respondError(w, http.StatusInternalServerError, "failed to create link")
		return
	}

	respondJSON(w, http.StatusCreated, link)
}

func (h *HTTPHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	page, err := h.links.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Error("Failed to list links: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list links")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// WithStats enables the per-link click breakdown endpoint.
func (h *HTTPHandler) WithStats(stats StatsReader) *HTTPHandler {
	h.stats = stats
	return h
}

func (h *HTTPHandler) LinkStats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		respondError(w, http.StatusServiceUnavailable, "click analytics are not enabled")
		return
	}

	code := r.PathValue("code")
	numbers, err := h.codec.Decode(r.Context(), code)
	if err != nil || len(numbers) != 1 {
		respondError(w, http.StatusNotFound, "link not found")
		return
	}

	stats, err := h.stats.Get(r.Context(), code)
	if err != nil {
		h.log.Error("Failed to load stats for %s: %v", code, err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
