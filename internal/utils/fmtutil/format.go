// Package fmtutil provides formatting utilities for human-readable output.
// Package fmtutil 提供用于人类可读输出的格式化工具。
package fmtutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatCount formats a count with thousand separators.
// FormatCount 格式化计数，添加千位分隔符。
func FormatCount(n int) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatDuration formats a duration to human readable format.
// FormatDuration 将持续时间格式化为可读格式。
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Microsecond).String()
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// FormatRate formats count per elapsed second with a K/M suffix.
// FormatRate 格式化每秒速率，使用 K/M 后缀。
func FormatRate(count int, elapsed time.Duration, unit string) string {
	if elapsed <= 0 {
		return "- " + unit + "/s"
	}
	rate := float64(count) / elapsed.Seconds()
	switch {
	case math.IsNaN(rate) || math.IsInf(rate, 0):
		return "- " + unit + "/s"
	case rate < 1000:
		return fmt.Sprintf("%.2f %s/s", rate, unit)
	case rate < 1000000:
		return fmt.Sprintf("%.2f K%s/s", rate/1000, unit)
	default:
		return fmt.Sprintf("%.2f M%s/s", rate/1000000, unit)
	}
}
