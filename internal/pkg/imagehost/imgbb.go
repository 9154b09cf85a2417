package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultImgBBURL = "https://api.imgbb.com/1/upload"

// ImgBB uploads through the ImgBB public API
type ImgBB struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewImgBB creates an ImgBB client. A nil httpClient gets a 30s timeout client.
func NewImgBB(apiKey, baseURL string, httpClient *http.Client) *ImgBB {
	if baseURL == "" {
		baseURL = defaultImgBBURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ImgBB{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *ImgBB) Upload(ctx context.Context, name string, r io.Reader, contentType string) (*Result, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return nil, &UploadError{Provider: "imgbb", Message: "build form", Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &UploadError{Provider: "imgbb", Message: "read image", Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &UploadError{Provider: "imgbb", Message: "build form", Err: err}
	}

	endpoint := fmt.Sprintf("%s?key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &UploadError{Provider: "imgbb", Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UploadError{Provider: "imgbb", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	var parsed imgbbResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, &UploadError{Provider: "imgbb", Message: fmt.Sprintf("unreadable response (status %d)", resp.StatusCode), Err: err}
	}

	if !parsed.Success || parsed.Data.URL == "" {
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, &UploadError{Provider: "imgbb", Message: msg}
	}

	return &Result{URL: parsed.Data.URL, ID: parsed.Data.ID}, nil
}
