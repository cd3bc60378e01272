package utils

import (
	"fmt"
	"strings"
)

// sizeUnitLabels lists the lower-case unit suffixes attached to formatted
// sizes, smallest first.
var sizeUnitLabels = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize converts a byte length into a human-readable lower-case
// unit string such as "312b" or "1.5kb". Values below ten units keep one
// decimal place; larger values round to whole units.
func FormatFileSize(byteCount int64) string {
	if byteCount < 0 {
		return "0b"
	}
	scaledValue := float64(byteCount)
	labelIndex := 0
	for scaledValue >= 1024 && labelIndex < len(sizeUnitLabels)-1 {
		scaledValue /= 1024
		labelIndex++
	}
	if labelIndex == 0 {
		return fmt.Sprintf("%db", byteCount)
	}
	if scaledValue < 10 {
		rendered := strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0")
		return rendered + sizeUnitLabels[labelIndex]
	}
	return fmt.Sprintf("%.0f%s", scaledValue, sizeUnitLabels[labelIndex])
}
