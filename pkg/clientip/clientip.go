package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when the request carries no usable address.
const Unknown = "unknown"

// RealClientIP returns the client IP from r.RemoteAddr. Proxy headers are not
// read here: chi's RealIP middleware runs first and rewrites RemoteAddr from
// X-Forwarded-For / X-Real-IP, so RemoteAddr may arrive with or without a port.
func RealClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	addr = strings.Trim(addr, "[]")
	if addr == "" {
		return Unknown
	}
	return addr
}
