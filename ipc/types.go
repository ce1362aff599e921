package ipc

import "encoding/json"

// Command names accepted on the wire.
const (
	CmdSearchIcons       = "search_icons"
	CmdGetIconContent    = "get_icon_content"
	CmdGetCacheStats     = "get_icon_cache_stats"
	CmdClearCache        = "clear_icon_cache"
	CmdInvalidateContent = "invalidate_icon_content"
)

// Error kinds reported in ErrorBody.Kind.
const (
	KindValidation = "validation"
	KindProvider   = "provider"
	KindNotFound   = "not_found"
	KindInternal   = "internal"
	KindCanceled   = "canceled"
)

// Request is one line read from the host.
type Request struct {
	ID      string          `json:"id"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response is one line written back. Exactly one of Result and Error is set.
type Response struct {
	ID     string     `json:"id"`
	OK     bool       `json:"ok"`
	Result any        `json:"result,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

type SearchArgs struct {
	Query          string `json:"query"`
	Style          string `json:"style,omitempty"`
	Fills          string `json:"fills,omitempty"`
	SortType       string `json:"sort_type,omitempty"`
	Page           int    `json:"page,omitempty"`
	PageSize       int    `json:"page_size,omitempty"`
	FromCollection bool   `json:"from_collection,omitempty"`
}

type Icon struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	FontClass      string `json:"font_class"`
	Unicode        string `json:"unicode,omitempty"`
	SVGContent     string `json:"svg_content,omitempty"`
	PreviewURL     string `json:"preview_url,omitempty"`
	Author         string `json:"author,omitempty"`
	RepositoryName string `json:"repository_name,omitempty"`
	RepositoryID   uint64 `json:"repository_id,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

type SearchResult struct {
	Icons    []Icon `json:"icons"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	HasMore  bool   `json:"has_more"`
}

// ContentArgs addresses one icon representation. An empty format means svg.
type ContentArgs struct {
	ID      uint64 `json:"id"`
	Format  string `json:"format,omitempty"`
	PNGSize int    `json:"png_size,omitempty"`
}

type Content struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Format     string `json:"format"`
	PNGSize    int    `json:"png_size,omitempty"`
	SVGContent string `json:"svg_content,omitempty"`
	PNGBase64  string `json:"png_base64,omitempty"`
	MimeType   string `json:"mime_type"`
}

type Stats struct {
	TotalEntries       int    `json:"total_entries"`
	ValidEntries       int    `json:"valid_entries"`
	ExpiredEntries     int    `json:"expired_entries"`
	CacheExpiryMinutes int    `json:"cache_expiry_minutes"`
	TTLSeconds         int64  `json:"ttl_seconds"`
	MemoryUsageBytes   int64  `json:"memory_usage_bytes"`
	MaxMemoryBytes     int64  `json:"max_memory_bytes"`
	MaxEntries         int    `json:"max_entries"`
	Hits               uint64 `json:"hits"`
	Misses             uint64 `json:"misses"`
	Evictions          uint64 `json:"evictions"`
	ExpiredReads       uint64 `json:"expired_reads"`
	Fetches            uint64 `json:"fetches"`
	SharedFetches      uint64 `json:"shared_fetches"`
}

type ClearArgs struct {
	ExpiredOnly bool `json:"expired_only"`
}

type ClearResult struct {
	ClearedCount   int `json:"cleared_count"`
	RemainingCount int `json:"remaining_count"`
}

type InvalidateResult struct {
	Removed bool `json:"removed"`
}
