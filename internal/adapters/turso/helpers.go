package turso

import (
	"time"

	"github.com/emiliopalmerini/labstats/internal/util"
)

// maxRetries bounds retries of reads that hit a closed Turso stream.
const maxRetries = 2

// Timestamps are stored as RFC3339 text in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return util.ParseTimestamp(s)
}
