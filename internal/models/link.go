package models

import "time"

type Link struct {
	ID        uint32     `json:"id"`
	Code      string     `json:"code"`
	ShortURL  string     `json:"short_url,omitempty"`
	LongURL   string     `json:"long_url"`
	Clicks    int64      `json:"clicks"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	QRCode    string     `json:"qr_code,omitempty"`
}

func (l *Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

type CreateLinkRequest struct {
	LongURL string `json:"long_url"`
	TTL     string `json:"ttl,omitempty"`
}

type ListLinksResponse struct {
	Links   []*Link `json:"links"`
	Total   int     `json:"total"`
	HasMore bool    `json:"has_more"`
}

type EncodeRequest struct {
	Numbers []uint32 `json:"numbers"`
}

type EncodeResponse struct {
	Hash string `json:"hash"`
}

type DecodeResponse struct {
	Hash    string   `json:"hash"`
	Numbers []uint32 `json:"numbers"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LinkStats breaks down the clicks recorded by the analytics worker.
type LinkStats struct {
	Code     string           `json:"code"`
	Total    int64            `json:"total"`
	Browsers map[string]int64 `json:"browsers"`
	OS       map[string]int64 `json:"os"`
	Devices  map[string]int64 `json:"devices"`
}

type HexRequest struct {
	Hex string `json:"hex"`
}

type HexResponse struct {
	Hash string `json:"hash"`
	Hex  string `json:"hex"`
}
