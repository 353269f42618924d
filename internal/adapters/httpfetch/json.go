package httpfetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"mtgmcp/internal/application"
	"mtgmcp/internal/ports"
)

const maxErrorBody = 4 << 10

// StatusError is a non-2xx response. Detail is the upstream's own message when it sent one.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// IsNotFound reports whether err is a 404 StatusError
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// GetJSON fetches url through f and decodes a 2xx body into out.
// Non-2xx responses return *StatusError without decoding.
func GetJSON(ctx context.Context, f ports.Fetcher, url string, out any) error {
	resp, err := f.Fetch(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Status: resp.StatusCode, Detail: errorDetail(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

// errorDetail pulls the message out of Scryfall ("details") and Archidekt ("detail") error bodies
func errorDetail(body []byte) string {
	var payload struct {
		Details string `json:"details"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Details != "" {
		return payload.Details
	}
	return payload.Detail
}

// Upstream wraps err as an *application.UpstreamError for op on subject,
// lifting the HTTP status out of a StatusError.
func Upstream(op, subject string, err error) error {
	ue := &application.UpstreamError{Op: op, Subject: subject, Err: err}

	var se *StatusError
	if errors.As(err, &se) {
		ue.Status = se.Status
		ue.Err = nil
		if se.Detail != "" {
			ue.Err = errors.New(se.Detail)
		}
	}
	return ue
}
