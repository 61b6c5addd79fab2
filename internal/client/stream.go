package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"content-indexer/domain"

	"github.com/cenkalti/backoff/v5"
)

// maxFrameLine bounds one SSE line; a snapshot of a large index is one line.
const maxFrameLine = 16 << 20

// WatchOptions controls reconnection of the change stream.
type WatchOptions struct {
	// MaxRetryInterval caps the wait between reconnects.
	MaxRetryInterval time.Duration
	// OnReconnect is called before each reconnect wait, if set.
	OnReconnect func(err error, wait time.Duration)
}

// Watch follows /api/events and calls handle for every change event until
// ctx is done or handle returns an error. Dropped connections are retried
// with exponential backoff; every new connection starts with a snapshot.
func (c *Client) Watch(ctx context.Context, opts WatchOptions, handle func(domain.ChangeEvent) error) error {
	bo := backoff.NewExponentialBackOff()
	if opts.MaxRetryInterval > 0 {
		bo.MaxInterval = opts.MaxRetryInterval
		bo.InitialInterval = min(bo.InitialInterval, bo.MaxInterval)
	}

	for {
		connected, err := c.stream(ctx, handle)
		if ctx.Err() != nil {
			return nil
		}
		var handlerErr *handlerError
		if errors.As(err, &handlerErr) {
			return handlerErr.err
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return err
		}
		if connected {
			bo.Reset()
		}
		if err == nil {
			err = io.EOF
		}

		wait := bo.NextBackOff()
		if opts.OnReconnect != nil {
			opts.OnReconnect(err, wait)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

type handlerError struct{ err error }

func (e *handlerError) Error() string { return e.err.Error() }

// stream reads one connection. connected reports whether the server
// accepted the stream before it ended.
func (c *Client) stream(ctx context.Context, handle func(domain.ChangeEvent) error) (connected bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/events", nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// The stream is long-lived, so the request timeout does not apply.
	httpClient := &http.Client{Transport: c.httpClient.Transport}
	resp, err := httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("open change stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, decodeError(resp)
	}

	err = ReadEvents(resp.Body, func(f Frame) error {
		var ev domain.ChangeEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			return fmt.Errorf("decode %s event: %w", f.Event, err)
		}
		if err := handle(ev); err != nil {
			return &handlerError{err: err}
		}
		return nil
	})
	return true, err
}

// Frame is one server-sent event.
type Frame struct {
	ID    string
	Event string
	Data  []byte
}

// ReadEvents parses an SSE stream and calls fn per complete frame. Comment
// lines such as heartbeats are skipped. It returns nil at EOF.
func ReadEvents(r io.Reader, fn func(Frame) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxFrameLine)

	var (
		cur  Frame
		data []string
		seen bool
	)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if seen && len(data) > 0 {
				cur.Data = []byte(strings.Join(data, "\n"))
				if err := fn(cur); err != nil {
					return err
				}
			}
			cur, data, seen = Frame{}, nil, false
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		seen = true
		switch field {
		case "id":
			cur.ID = value
		case "event":
			cur.Event = value
		case "data":
			data = append(data, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read change stream: %w", err)
	}
	return nil
}
