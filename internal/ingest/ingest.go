package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Cache key tags, kept stable across runs so previously extracted documents
// survive restarts.
const (
	pdfKeyPrefix  = "pdf:"
	fileKeyPrefix = "textfile:"
	urlKeyPrefix  = "url:"
)

const resumeChunkSize = 1000

// Documents holds the three raw interview inputs after extraction.
type Documents struct {
	JobPost        string
	CompanyProfile string
	Resume         string
}

// Loader reads interview documents from local files, URLs, or PDFs, caching
// extracted text by source tag.
type Loader struct {
	cache  *Cache
	client *http.Client
	logger *zap.Logger

	// Chunking controls whether the resume text is re-flowed through
	// fixed-size chunks before downstream processing.
	Chunking bool
}

// NewLoader creates a Loader backed by the provided cache.
func NewLoader(cache *Cache, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		cache: cache,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:   logger,
		Chunking: true,
	}
}

// Documents ingests the job posting, company profile, and resume. Each path
// may be a local file or an HTTP(S) URL; a resume ending in .pdf is parsed as
// a PDF (remote PDFs are downloaded to a temporary file first).
func (l *Loader) Documents(ctx context.Context, jobPath, companyPath, resumePath string) (*Documents, error) {
	jobPost, err := l.loadTextSource(ctx, jobPath)
	if err != nil {
		return nil, fmt.Errorf("job posting: %w", err)
	}

	companyProfile, err := l.loadTextSource(ctx, companyPath)
	if err != nil {
		return nil, fmt.Errorf("company profile: %w", err)
	}

	resume, err := l.loadResume(ctx, resumePath)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}

	if l.Chunking {
		resume = strings.Join(ChunkText(resume, resumeChunkSize), "\n")
	}

	return &Documents{
		JobPost:        jobPost,
		CompanyProfile: companyProfile,
		Resume:         resume,
	}, nil
}

func (l *Loader) loadTextSource(ctx context.Context, path string) (string, error) {
	if strings.HasPrefix(path, "http") {
		return l.FromURL(ctx, path)
	}
	return l.FromFile(path)
}

func (l *Loader) loadResume(ctx context.Context, path string) (string, error) {
	if strings.HasPrefix(strings.ToLower(path), "http") {
		local, err := l.Download(ctx, path)
		if err != nil {
			return "", err
		}
		return l.FromPDF(local)
	}

	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		return l.FromPDF(path)
	}
	return l.FromFile(path)
}

// FromFile loads text from a local UTF-8 file, consulting the cache first.
func (l *Loader) FromFile(path string) (string, error) {
	key := fileKeyPrefix + path
	if text, ok := l.cached(key); ok {
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	text := string(data)
	l.store(key, text)
	return text, nil
}

// FromURL fetches text from an HTTP(S) URL, consulting the cache first. A
// non-success status is an error; there is no retry.
func (l *Loader) FromURL(ctx context.Context, url string) (string, error) {
	key := urlKeyPrefix + url
	if text, ok := l.cached(key); ok {
		return text, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %q: %w", url, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %q: bad status: %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body of %q: %w", url, err)
	}

	text := string(data)
	l.store(key, text)
	return text, nil
}

// FromPDF extracts the text of a local PDF, consulting the cache first.
func (l *Loader) FromPDF(path string) (string, error) {
	key := pdfKeyPrefix + path
	if text, ok := l.cached(key); ok {
		return text, nil
	}

	text, err := extractPDFText(path)
	if err != nil {
		return "", err
	}

	l.store(key, text)
	return text, nil
}

// Download streams a remote file to a temporary local path and returns that
// path. Used for resumes referenced by URL.
func (l *Loader) Download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %q: %w", url, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("downloading %q: bad status: %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp("", "interview-pilot-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return "", fmt.Errorf("writing %q: %w", tmp.Name(), err)
	}

	l.logger.Debug("downloaded remote document",
		zap.String("url", url),
		zap.String("path", tmp.Name()),
	)

	return tmp.Name(), nil
}

// cached looks the key up, treating cache errors as misses. Extraction must
// not fail just because the cache is unavailable.
func (l *Loader) cached(key string) (string, bool) {
	if l.cache == nil {
		return "", false
	}

	text, ok, err := l.cache.Get(key)
	if err != nil {
		l.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if ok {
		l.logger.Debug("cache hit", zap.String("key", key))
	}

	return text, ok
}

func (l *Loader) store(key, text string) {
	if l.cache == nil {
		return
	}

	if err := l.cache.Put(key, text); err != nil {
		l.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}
