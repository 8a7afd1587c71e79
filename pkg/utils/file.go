package utils

import (
	"math"

	"github.com/dustin/go-humanize"
)

var fileSizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatFileSize renders bytes with binary (1024) steps. Trailing zeros are
// dropped, so 1024 is "1 KB" and 1536 is "1.5 KB". decimals defaults to 2.
func FormatFileSize(bytes int64, decimals ...int) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	d := 2
	if len(decimals) > 0 && decimals[0] >= 0 {
		d = decimals[0]
	}

	value := float64(bytes)
	i := 0
	for math.Abs(value) >= 1024 && i < len(fileSizeUnits)-1 {
		value /= 1024
		i++
	}
	return humanize.FtoaWithDigits(value, d) + " " + fileSizeUnits[i]
}
