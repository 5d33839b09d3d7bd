// Package netx contains small networking helpers shared by server components.
package netx

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the network origin of an HTTP request for session
// IP pinning. The first address in X-Forwarded-For wins when the server sits
// behind a reverse proxy; otherwise the host part of RemoteAddr is used.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
