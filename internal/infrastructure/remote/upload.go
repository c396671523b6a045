package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// UploadImage POST /upload/image como multipart (campo "file"). Devuelve la URL pública.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("remote: multipart: %w", err)
	}
	if _, err := io.Copy(fw, io.LimitReader(r, maxBodyBytes)); err != nil {
		return "", fmt.Errorf("remote: leer imagen: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("remote: multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL("/upload/image"), &buf)
	if err != nil {
		return "", fmt.Errorf("remote: crear request upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var out struct {
		URL string `json:"url"`
	}
	if err := c.send(req, &out, "upload failed"); err != nil {
		return "", err
	}
	return out.URL, nil
}
