package control

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseConnections parses a textual connection description into a C map.
// The syntax is a comma-separated list of port=signal pairs:
//
//	c, err := control.ParseConnections("u1=c1, u2=c2")
//
// Whitespace around names is ignored. An empty string yields an empty map.
func ParseConnections(s string) (C, error) {
	c := make(C)
	if strings.TrimSpace(s) == "" {
		return c, nil
	}
	for _, pair := range strings.Split(s, ",") {
		port, signal, found := strings.Cut(pair, "=")
		port, signal = strings.TrimSpace(port), strings.TrimSpace(signal)
		if !found || port == "" || signal == "" {
			return nil, errors.Errorf("invalid connection %q, want port=signal", strings.TrimSpace(pair))
		}
		if _, dup := c[port]; dup {
			return nil, errors.Errorf("port %q connected more than once", port)
		}
		c[port] = signal
	}
	return c, nil
}
