package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

// Response is one fully-read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Proto      string
	Header     http.Header
	Body       []byte
}

// readResponse reads the whole body into memory and closes it.
func readResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Proto:      resp.Proto,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// StatusLine returns the status line, e.g. "HTTP/1.1 200 OK".
func (r *Response) StatusLine() string {
	return r.Proto + " " + r.Status
}

// Text returns the body as UTF-8 text.
func (r *Response) Text() string {
	return string(r.Body)
}

// Identifier parses the body as a feature identifier.
// Surrounding whitespace is ignored.
func (r *Response) Identifier() (uuid.UUID, error) {
	text := strings.TrimSpace(r.Text())
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: status %s: body %q is not a uuid: %w",
			geoerrors.ErrResponseFormat, r.Status, truncate(text, 128), err)
	}
	if len(text) != 36 || !strings.EqualFold(id.String(), text) {
		return uuid.Nil, fmt.Errorf("%w: status %s: body %q is not a canonical uuid",
			geoerrors.ErrResponseFormat, r.Status, truncate(text, 128))
	}
	return id, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
