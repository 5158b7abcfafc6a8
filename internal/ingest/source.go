package ingest

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnsupportedScheme is returned for locations that are neither files nor http(s) URLs.
var ErrUnsupportedScheme = errors.New("unsupported transcript location scheme")

const (
	userAgent      = "spigell/interview-ranker"
	acceptEncoding = "gzip"
	defaultTimeout = 30 * time.Second
)

// Source loads transcript blocks from a local file or an http(s) URL,
// for example a pre-signed object storage link.
type Source struct {
	HTTPClient *http.Client
	UserAgent  string
	logger     *zap.Logger
}

// NewSource returns a Source with a default HTTP client.
func NewSource(logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Source{
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		UserAgent: userAgent,
		logger:    logger,
	}
}

// Load returns the content stored at location.
func (s *Source) Load(ctx context.Context, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", errors.New("transcript location is not configured")
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || isWindowsDrive(u.Scheme) {
		return s.loadFile(location)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return s.loadFile(u.Path)
	case "http", "https":
		return s.loadHTTP(ctx, u)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}

// Read loads location and parses it into candidates. Files ending in .json, .yaml or .yml
// are read as structured lists; everything else as "name: transcript" lines.
func (s *Source) Read(ctx context.Context, location string) ([]Candidate, []MalformedLine, error) {
	raw, err := s.Load(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	if isStructured(location) {
		return ParseStructured([]byte(raw))
	}

	candidates, skipped := ParseCandidates(raw)
	return candidates, skipped, nil
}

func (s *Source) loadFile(path string) (string, error) {
	s.logger.Debug("reading transcripts from file", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading transcripts file %q: %w", path, err)
	}

	return string(data), nil
}

func (s *Source) loadHTTP(ctx context.Context, u *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	// query strings of pre-signed links carry credentials
	s.logger.Debug("make request", zap.String("host", u.Host), zap.String("path", u.Path))

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching transcripts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching transcripts: bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading transcripts body: %w", err)
	}

	return string(data), nil
}

func isStructured(location string) bool {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		location = u.Path
	}

	switch strings.ToLower(filepath.Ext(location)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// isWindowsDrive treats "C:" style prefixes as paths rather than schemes.
func isWindowsDrive(scheme string) bool {
	return len(scheme) == 1
}
