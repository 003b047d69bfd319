package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderID generates a unique order ID for gateway payments.
func GenerateOrderID() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// ConvertPersianToEnglish converts Persian/Arabic numerals to English digits.
func ConvertPersianToEnglish(s string) string {
	var result strings.Builder
	for _, r := range s {
		switch {
		case r >= '۰' && r <= '۹':
			result.WriteRune(r - '۰' + '0')
		case r >= '٠' && r <= '٩':
			result.WriteRune(r - '٠' + '0')
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ParseAmount converts user-typed amounts ("۵۰,۰۰۰", "50000") to int64.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(ConvertPersianToEnglish(s))
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// ParseInt safely converts a string to int with a default value.
func ParseInt(s string, defaultVal int) int {
	s = strings.TrimSpace(ConvertPersianToEnglish(s))
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// FormatNumber adds comma separators to a number.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	if neg {
		return "-" + result.String()
	}
	return result.String()
}

// FormatUnix renders a Unix timestamp for chat messages.
func FormatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}
