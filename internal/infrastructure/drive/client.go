package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/config"
)

const defaultBaseURL = "https://www.googleapis.com/drive/v3"

const folderMimeType = "application/vnd.google-apps.folder"

// Folder is a Drive folder entry.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// File is a Drive file entry.
type File struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

// Client calls the Google Drive REST API with an API key. Only public
// folders are readable this way, which is all the image workflow needs.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a Drive client from config.
func NewClient(cfg config.GoogleConfig, logger *zap.Logger) *Client {
	baseURL := cfg.DriveBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// ListSubfolders lists the immediate subfolders of a folder.
func (c *Client) ListSubfolders(ctx context.Context, folderID string) ([]Folder, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false",
		folderID, folderMimeType)

	files, err := c.listFiles(ctx, query)
	if err != nil {
		return nil, err
	}

	folders := make([]Folder, 0, len(files))
	for _, f := range files {
		folders = append(folders, Folder{ID: f.ID, Name: f.Name})
	}
	return folders, nil
}

// ListImages lists the image files directly inside a folder.
func (c *Client) ListImages(ctx context.Context, folderID string) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType contains 'image/' and trashed = false",
		folderID)

	return c.listFiles(ctx, query)
}

func (c *Client) listFiles(ctx context.Context, query string) ([]File, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("fields", "files(id,name,mimeType)")
	params.Set("pageSize", "1000")
	params.Set("orderBy", "name")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/files?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Drive API request failed", zap.Error(err))
		return nil, fmt.Errorf("drive api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read drive response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Drive API returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("drive api returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Files []File `json:"files"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode drive response: %w", err)
	}

	return parsed.Files, nil
}
