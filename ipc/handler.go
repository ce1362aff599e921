// Package ipc exposes an api.IconService to a host process as
// newline-delimited JSON commands.
package ipc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sanshu/iconcache/api"
	"github.com/sanshu/iconcache/types"
)

type commandFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Handler turns Requests into Responses. It holds no per-request state and
// is safe for concurrent use.
type Handler struct {
	svc      api.IconService
	logger   *slog.Logger
	commands map[string]commandFunc
}

func NewHandler(svc api.IconService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{svc: svc, logger: logger}
	h.commands = map[string]commandFunc{
		CmdSearchIcons:       h.searchIcons,
		CmdGetIconContent:    h.getIconContent,
		CmdGetCacheStats:     h.getCacheStats,
		CmdClearCache:        h.clearCache,
		CmdInvalidateContent: h.invalidateContent,
	}
	return h
}

/*
Handle runs one command.

BEHAVIOR:
---------
- Unknown commands and undecodable args fail with kind "validation"
- Core errors are mapped to a kind by errorBody
- The response always carries req.ID
*/
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	cmd, ok := h.commands[req.Command]
	if !ok {
		return failure(req.ID, &ErrorBody{Kind: KindValidation, Message: fmt.Sprintf("unknown command %q", req.Command)})
	}

	result, err := cmd(ctx, req.Args)
	if err != nil {
		body := errorBody(err)
		h.logger.Debug("command failed", "id", req.ID, "command", req.Command, "kind", body.Kind, "error", err)
		return failure(req.ID, body)
	}

	h.logger.Debug("command handled", "id", req.ID, "command", req.Command, "duration", time.Since(start))
	return Response{ID: req.ID, OK: true, Result: result}
}

func (h *Handler) searchIcons(ctx context.Context, raw json.RawMessage) (any, error) {
	var args SearchArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	page, err := h.svc.Search(ctx, args.params())
	if err != nil {
		return nil, err
	}
	return toSearchResult(page), nil
}

func (h *Handler) getIconContent(ctx context.Context, raw json.RawMessage) (any, error) {
	var args ContentArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	res, err := h.svc.ResolveContent(ctx, args.ID, args.format(), args.PNGSize)
	if err != nil {
		return nil, err
	}
	return toContent(res), nil
}

func (h *Handler) getCacheStats(context.Context, json.RawMessage) (any, error) {
	return toStats(h.svc.Stats()), nil
}

func (h *Handler) clearCache(_ context.Context, raw json.RawMessage) (any, error) {
	var args ClearArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	res := h.svc.ClearCache(args.ExpiredOnly)
	return ClearResult{ClearedCount: res.ClearedCount, RemainingCount: res.RemainingCount}, nil
}

func (h *Handler) invalidateContent(_ context.Context, raw json.RawMessage) (any, error) {
	var args ContentArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	removed, err := h.svc.InvalidateContent(args.ID, args.format(), args.PNGSize)
	if err != nil {
		return nil, err
	}
	return InvalidateResult{Removed: removed}, nil
}

// decodeArgs rejects unknown fields. Missing args decode as the zero value.
func decodeArgs(raw json.RawMessage, out any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return &types.ValidationError{Field: "args", Reason: err.Error()}
	}
	return nil
}

// errorBody maps a core error to its wire kind.
func errorBody(err error) *ErrorBody {
	var (
		ve *types.ValidationError
		nf *types.NotFoundError
		pe *types.ProviderError
	)
	switch {
	case errors.As(err, &ve):
		return &ErrorBody{Kind: KindValidation, Message: err.Error()}
	case errors.As(err, &nf):
		return &ErrorBody{Kind: KindNotFound, Message: err.Error()}
	case errors.As(err, &pe):
		return &ErrorBody{Kind: KindProvider, Message: err.Error(), Status: pe.Status}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &ErrorBody{Kind: KindCanceled, Message: err.Error()}
	default:
		return &ErrorBody{Kind: KindInternal, Message: err.Error()}
	}
}

func failure(id string, body *ErrorBody) Response {
	return Response{ID: id, OK: false, Error: body}
}
