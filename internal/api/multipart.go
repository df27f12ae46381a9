package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

// FieldName is the form field carrying the feature document.
const FieldName = "geojson"

// PartContentType is the content type of the feature part.
const PartContentType = "application/json"

// featureBody holds an encoded single-part multipart body.
type featureBody struct {
	data        []byte
	contentType string
}

// newFeatureBody reads path and encodes it as the only part of a
// multipart/form-data body, keeping the file's base name.
func newFeatureBody(path string) (*featureBody, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: intentional CLI file read
	if err != nil {
		return nil, fmt.Errorf("%w: read feature file: %w", geoerrors.ErrInvalidInput, err)
	}
	return encodeFeature(filepath.Base(path), content)
}

func encodeFeature(filename string, content []byte) (*featureBody, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(FieldName), escapeQuotes(filename)))
	h.Set("Content-Type", PartContentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("write part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	return &featureBody{data: buf.Bytes(), contentType: mw.FormDataContentType()}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
