package ports

import "context"

// ReportStorage persists rendered statistics reports.
type ReportStorage interface {
	// Store saves data under key and returns the location it was written to.
	Store(ctx context.Context, key string, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}
