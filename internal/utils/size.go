package utils

import (
	"fmt"
	"math"
	"strings"
)

const bytesPerMebibyte = 1024 * 1024

// MaxMebibytes is the exclusive upper bound accepted by MebibytesToBytes.
const MaxMebibytes = float64(math.MaxInt64) / bytesPerMebibyte

// FormatFileSize converts a byte length into a human-readable lower-case unit string.
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "0b"
	}
	units := []string{"b", "kb", "mb", "gb", "tb", "pb"}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(units)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", bytes)
	}
	if value < 10 {
		return trimZeroFraction(fmt.Sprintf("%.1f", value)) + units[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", value, units[unitIndex])
}

// FormatMebibytes renders a byte count in MiB with one decimal, dropping a ".0" fraction.
// 2097152 becomes "2" and 1572864 becomes "1.5".
func FormatMebibytes(bytes int64) string {
	return trimZeroFraction(fmt.Sprintf("%.1f", float64(bytes)/bytesPerMebibyte))
}

// MebibytesToBytes converts a MiB quantity into a byte count.
// The caller keeps mebibytes finite and below MaxMebibytes.
func MebibytesToBytes(mebibytes float64) int64 {
	return int64(mebibytes * bytesPerMebibyte)
}

func trimZeroFraction(formatted string) string {
	return strings.TrimSuffix(formatted, ".0")
}
