package templates

import (
	"fmt"

	"github.com/emiliopalmerini/labstats/internal/util"
)

func formatConcentration(c float64) string {
	return fmt.Sprintf("%.2f", c)
}

func formatCount(n int) string {
	return util.FormatNumber(int64(n))
}
