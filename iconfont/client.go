// Package iconfont implements types.IconFetcher against the iconfont.cn API.
package iconfont

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sanshu/iconcache/config"
	"github.com/sanshu/iconcache/types"
)

const (
	searchPath = "/api/icon/search.json"
	infoPath   = "/api/icon/iconInfo.json"

	// maxErrorBody caps how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// Client talks to iconfont over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the provider described by cfg.
func NewClient(cfg config.ProviderConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

/*
SearchIcons posts one search form to the provider.

Filters equal to "all" are sent empty, which the provider reads as
"no filter". Fills are encoded as the provider's 0 (single) / 1 (multi).
*/
func (c *Client) SearchIcons(ctx context.Context, q types.ProviderQuery) (types.RawSearchResult, error) {
	form := url.Values{}
	form.Set("q", q.Query)
	form.Set("sortType", string(q.SortType))
	form.Set("page", strconv.Itoa(q.Page))
	form.Set("pageSize", strconv.Itoa(q.PageSize))
	form.Set("fromCollection", "-1")
	if q.FromCollection {
		form.Set("fromCollection", "1")
	}
	form.Set("fills", "")
	switch q.Fills {
	case types.FillsSingle:
		form.Set("fills", "0")
	case types.FillsMulti:
		form.Set("fills", "1")
	}
	form.Set("style", "")
	if q.Style != types.StyleAll {
		form.Set("style", string(q.Style))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, strings.NewReader(form.Encode()))
	if err != nil {
		return types.RawSearchResult{}, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var data *searchData
	if err := c.do(req, "search", &data); err != nil {
		return types.RawSearchResult{}, err
	}
	if data == nil {
		return types.RawSearchResult{}, nil
	}

	res := types.RawSearchResult{Count: data.Count, Icons: make([]types.RawIcon, 0, len(data.Icons))}
	for _, icon := range data.Icons {
		res.Icons = append(res.Icons, icon.raw())
	}
	return res, nil
}

/*
FetchContent returns one icon's SVG markup.

The provider has no raster endpoint, so png requests fail with a
ProviderError instead of reaching the network.
*/
func (c *Client) FetchContent(ctx context.Context, q types.ContentQuery) (types.RawContent, error) {
	if q.Format != types.FormatSVG {
		return types.RawContent{}, &types.ProviderError{
			Op:      "content",
			Status:  http.StatusNotImplemented,
			Message: fmt.Sprintf("format %s is not offered by iconfont", q.Format),
		}
	}

	endpoint := fmt.Sprintf("%s%s?id=%d", c.baseURL, infoPath, q.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.RawContent{}, fmt.Errorf("failed to create icon info request: %w", err)
	}

	var icon *apiIcon
	if err := c.do(req, "content", &icon); err != nil {
		return types.RawContent{}, err
	}
	if icon == nil || icon.ID == 0 || icon.ShowSVG == "" {
		return types.RawContent{}, &types.NotFoundError{ID: q.ID}
	}

	return types.RawContent{
		Name:     icon.Name,
		Data:     []byte(icon.ShowSVG),
		MimeType: types.MimeSVG,
	}, nil
}

// do sends req and decodes the envelope's data into out.
func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return &types.ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("iconfont request", "op", op, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &types.ProviderError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &types.ProviderError{Op: op, Status: resp.StatusCode, Message: "malformed response", Err: err}
	}
	if envelope.Code != http.StatusOK {
		return &types.ProviderError{Op: op, Status: envelope.Code, Message: envelope.Message}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &types.ProviderError{Op: op, Status: resp.StatusCode, Message: "unexpected data shape", Err: err}
	}
	return nil
}

func (i apiIcon) raw() types.RawIcon {
	r := types.RawIcon{
		ID:         i.ID,
		Name:       i.Name,
		FontClass:  i.FontClass,
		Unicode:    i.Unicode,
		ShowSVG:    i.ShowSVG,
		PreviewURL: i.PreviewURL,
		CreatedAt:  i.CreatedAt,
	}
	if i.User != nil {
		r.Author = i.User.Nickname
	}
	if i.Repository != nil {
		r.RepositoryID = i.Repository.ID
		r.RepositoryName = i.Repository.Name
	}
	return r
}
