package featureflags

import (
	"os"
	"strings"
)

// Flags in use:
//
//	FLAG_RETENTION_WORKER - purge old rejected applicants in the background
//	FLAG_APPLICANT_FEED   - expose the live websocket applicant feed
const (
	RetentionWorker = "RETENTION_WORKER"
	ApplicantFeed   = "APPLICANT_FEED"
)

// Enabled returns true if a flag is enabled via environment variable.
// Flags are read from env as FLAG_<NAME>=true/1/yes (case-insensitive)
func Enabled(name string) bool {
	v := os.Getenv("FLAG_" + strings.ToUpper(name))
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
