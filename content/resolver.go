// Package content resolves an icon's renderable SVG or PNG through the cache.
package content

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sanshu/iconcache/engine"
	"github.com/sanshu/iconcache/key"
	"github.com/sanshu/iconcache/types"
)

// Limits bounds PNG sizes.
type Limits struct {
	DefaultPNGSize int
	MaxPNGSize     int
}

var DefaultLimits = Limits{DefaultPNGSize: 64, MaxPNGSize: 1024}

type Resolver struct {
	engine  *engine.Engine
	fetcher types.IconFetcher
	limits  Limits
	logger  *slog.Logger
}

func NewResolver(e *engine.Engine, f types.IconFetcher, limits Limits, logger *slog.Logger) *Resolver {
	if limits.DefaultPNGSize == 0 {
		limits.DefaultPNGSize = DefaultLimits.DefaultPNGSize
	}
	if limits.MaxPNGSize == 0 {
		limits.MaxPNGSize = DefaultLimits.MaxPNGSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{engine: e, fetcher: f, limits: limits, logger: logger}
}

// Key validates the request and returns the cache key of a single format.
// FormatBoth has no key of its own; it is two lookups.
func (r *Resolver) Key(id uint64, format types.Format, size int) (string, error) {
	if format == types.FormatBoth {
		return "", &types.ValidationError{Field: "format", Reason: "both is resolved as svg and png separately"}
	}
	size, err := r.canonical(id, format, size)
	if err != nil {
		return "", err
	}
	return key.Content(id, format, size), nil
}

/*
ResolveContent returns one icon's content.

  - svg: raw markup; size is ignored.
  - png: base64 raster at size (0 selects the default). Every size is its
    own cache entry.
  - both: svg and png resolved independently and combined. Both halves must
    succeed, so the fetcher has to serve png as well as svg.

Unknown ids fail with *types.NotFoundError, upstream failures with
*types.ProviderError. Neither is cached.
*/
func (r *Resolver) ResolveContent(ctx context.Context, id uint64, format types.Format, size int) (types.ContentResult, error) {
	size, err := r.canonical(id, format, size)
	if err != nil {
		return types.ContentResult{}, err
	}

	if format != types.FormatBoth {
		return r.resolve(ctx, id, format, size)
	}

	svg, err := r.resolve(ctx, id, types.FormatSVG, 0)
	if err != nil {
		return types.ContentResult{}, err
	}
	png, err := r.resolve(ctx, id, types.FormatPNG, size)
	if err != nil {
		return types.ContentResult{}, err
	}
	name := svg.Name
	if name == "" {
		name = png.Name
	}
	return types.ContentResult{
		ID:        id,
		Name:      name,
		Format:    types.FormatBoth,
		Size:      size,
		SVG:       svg.SVG,
		PNGBase64: png.PNGBase64,
		MimeType:  types.MimeSVG,
	}, nil
}

// SeedSVG caches markup that arrived with a search result, so a later svg
// request for the icon needs no provider call. Existing entries are kept.
func (r *Resolver) SeedSVG(icon types.IconMetadata) {
	if icon.ID == 0 || icon.SVG == "" {
		return
	}
	k := key.Content(icon.ID, types.FormatSVG, 0)
	if _, ok := r.engine.Store().Peek(k); ok {
		return
	}
	r.engine.Put(k, types.ContentResult{
		ID:       icon.ID,
		Name:     icon.Name,
		Format:   types.FormatSVG,
		SVG:      icon.SVG,
		MimeType: types.MimeSVG,
	})
}

func (r *Resolver) resolve(ctx context.Context, id uint64, format types.Format, size int) (types.ContentResult, error) {
	k := key.Content(id, format, size)

	v, err := r.engine.Get(ctx, k, func(fctx context.Context) (any, error) {
		raw, err := r.fetcher.FetchContent(fctx, types.ContentQuery{ID: id, Format: format, Size: size})
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil, &types.NotFoundError{ID: id}
			}
			return nil, types.AsProviderError("content", err)
		}
		if len(raw.Data) == 0 {
			return nil, &types.ProviderError{Op: "content", Message: fmt.Sprintf("empty %s payload for icon %d", format, id)}
		}
		return build(id, format, size, raw), nil
	})
	if err != nil {
		return types.ContentResult{}, err
	}
	return v.(types.ContentResult), nil
}

func build(id uint64, format types.Format, size int, raw types.RawContent) types.ContentResult {
	res := types.ContentResult{ID: id, Name: raw.Name, Format: format, Size: size}
	switch format {
	case types.FormatPNG:
		res.PNGBase64 = base64.StdEncoding.EncodeToString(raw.Data)
		res.MimeType = types.MimePNG
	default:
		res.SVG = string(raw.Data)
		res.MimeType = types.MimeSVG
	}
	if raw.MimeType != "" {
		res.MimeType = raw.MimeType
	}
	return res
}

func (r *Resolver) canonical(id uint64, format types.Format, size int) (int, error) {
	if id == 0 {
		return 0, &types.ValidationError{Field: "id", Reason: "must be non-zero"}
	}
	switch format {
	case types.FormatSVG:
		return 0, nil
	case types.FormatPNG, types.FormatBoth:
	default:
		return 0, &types.ValidationError{Field: "format", Reason: fmt.Sprintf("unknown format %q", format)}
	}
	if size == 0 {
		return r.limits.DefaultPNGSize, nil
	}
	if size < 1 || size > r.limits.MaxPNGSize {
		return 0, &types.ValidationError{
			Field:  "png_size",
			Reason: fmt.Sprintf("must be within [1, %d], got %d", r.limits.MaxPNGSize, size),
		}
	}
	return size, nil
}
