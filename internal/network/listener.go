package network

import (
	"fmt"
	"net"

	"golang.org/x/net/netutil"
)

// Listen opens a TCP listener on addr. With maxConns > 0 at most maxConns
// connections are accepted at once; the rest wait in the kernel backlog.
func Listen(addr string, maxConns int) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	if maxConns > 0 {
		return netutil.LimitListener(ln, maxConns), nil
	}
	return ln, nil
}
