package utils

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP resolves the originating client address. X-Forwarded-For may
// carry a proxy hop list; the first entry is the client.
func RealClientIP(r *http.Request) string {
	if xfwd := r.Header.Get("X-Forwarded-For"); xfwd != "" {
		if idx := strings.IndexByte(xfwd, ','); idx >= 0 {
			return strings.TrimSpace(xfwd[:idx])
		}
		return strings.TrimSpace(xfwd)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
