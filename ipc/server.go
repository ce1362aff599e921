package ipc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// maxLineBytes bounds one request line.
const maxLineBytes = 4 << 20

/*
Server reads one Request per line and writes one Response per line.

Requests run concurrently, each on its own goroutine, so a slow provider
call never blocks a stats query behind it. Responses may therefore come
back out of order; the host matches them by id.
*/
type Server struct {
	handler *Handler
	logger  *slog.Logger

	mu sync.Mutex // serialises writes to out
	wg sync.WaitGroup
}

func NewServer(h *Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{handler: h, logger: logger}
}

/*
ServeStdio serves until in reaches EOF or ctx is cancelled, then waits for
in-flight requests to finish writing.

A request without an id gets a generated one so its response can still be
correlated. A line that is not valid JSON gets a "validation" response.
*/
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.logger.Info("ipc server started")
	defer s.logger.Info("ipc server stopped")

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				s.wg.Wait()
				select {
				case err := <-readErr:
					return err
				default:
					return ctx.Err()
				}
			}
			s.dispatch(ctx, out, line)
		}
	}
}

func (s *Server) dispatch(ctx context.Context, out io.Writer, line []byte) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.write(out, failure(uuid.NewString(), &ErrorBody{Kind: KindValidation, Message: "parse error: " + err.Error()}))
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.write(out, s.handler.Handle(ctx, req))
	}()
}

func (s *Server) write(out io.Writer, resp Response) {
	b, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to encode response", "id", resp.ID, "error", err)
		b, _ = json.Marshal(failure(resp.ID, &ErrorBody{Kind: KindInternal, Message: "response encoding failed"}))
	}
	b = append(b, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := out.Write(b); err != nil {
		s.logger.Warn("failed to write response", "id", resp.ID, "error", err)
	}
}
