package utils

import (
	"fmt"
	"time"
)

// SessionName returns a unique output directory name:
//
//	<prefix>_YYYYMMDD_HHMMSS
func SessionName(prefix string) string {
	return SessionNameAt(prefix, time.Now())
}

// SessionNameAt is SessionName for a fixed instant.
func SessionNameAt(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = "prep"
	}
	return fmt.Sprintf("%s_%s", prefix, t.Format("20060102_150405"))
}
