package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderID generates a unique merchant order ID for payment
// requests. Stays well under the gateway's 50 character limit.
func GenerateOrderID() string {
	short := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), short)
}

// FormatRial renders an amount with thousand separators, e.g. 1,250,000.
func FormatRial(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
