package imgio

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the timestamp format used in output file names.
const TimestampLayout = "20060102-150405"

// OutputName builds the download name {kind}_{basename}_{timestamp}.png,
// where basename is the upload's file name up to its first dot.
func OutputName(kind, uploadName string, t time.Time) string {
	base := filepath.Base(uploadName)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return kind + "_" + base + "_" + t.Format(TimestampLayout) + ".png"
}
