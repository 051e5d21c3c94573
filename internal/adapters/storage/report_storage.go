package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emiliopalmerini/labstats/internal/util"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidKey     = errors.New("invalid report key")
)

// ReportStorage keeps gzip-compressed reports under the labstats data directory.
type ReportStorage struct {
	baseDir string
}

func NewReportStorage() (*ReportStorage, error) {
	dir, err := util.DataPath("reports")
	if err != nil {
		return nil, err
	}
	return NewReportStorageAt(dir)
}

func NewReportStorageAt(dir string) (*ReportStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}
	return &ReportStorage{baseDir: dir}, nil
}

func (s *ReportStorage) Store(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	destPath, err := s.getPath(key)
	if err != nil {
		return "", err
	}

	// Written beside the destination and renamed into place, so a failed
	// write never leaves a truncated report under key.
	tmp, err := os.CreateTemp(s.baseDir, "."+key+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := writeCompressed(tmp, data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to store report: %w", err)
	}

	return destPath, nil
}

func writeCompressed(w io.Writer, data []byte) error {
	gw := gzip.NewWriter(w)
	if _, err := io.Copy(gw, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to compress report: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

func (s *ReportStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.getPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, key)
		}
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer func() { _ = file.Close() }()

	gr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	data, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	return data, nil
}

func (s *ReportStorage) getPath(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, key+".json.gz"), nil
}

// Keys are flat names: no separators, no parent references.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
