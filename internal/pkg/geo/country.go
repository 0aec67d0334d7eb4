package geo

import (
	"net"
	"strings"
)

// DefaultCountry is used whenever a client's country cannot be determined.
const DefaultCountry = "US"

// UnknownIP stands in for a request without a usable forwarded-for address.
const UnknownIP = "unknown"

var supported = map[string]struct{}{
	"NG":  {},
	"GH":  {},
	"KE":  {},
	"ZAR": {},
	"US":  {},
}

// Normalize upper-cases a country code and maps ISO "ZA" to the catalog key "ZAR".
func Normalize(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "ZA" {
		return "ZAR"
	}
	return c
}

// IsSupported reports whether code has a pricing catalog.
func IsSupported(code string) bool {
	_, ok := supported[Normalize(code)]
	return ok
}

// ClientIP returns the first address of an X-Forwarded-For header value in
// canonical form, or UnknownIP when it is missing or not an IP address.
func ClientIP(forwardedFor string) string {
	first, _, _ := strings.Cut(forwardedFor, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return UnknownIP
}
