package engine

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
)

// ProxyAuth holds proxy credentials.
type ProxyAuth struct {
	Username string
	Password string
}

// Proxy is a parsed outbound proxy descriptor.
type Proxy struct {
	Protocol string
	Host     string
	Port     int
	Auth     *ProxyAuth // nil when the descriptor carries no complete credentials
}

var proxyRe = regexp.MustCompile(`^(https?)://(?:([^:@]*):?([^@]*)@)?([^:@/]*)(?::(\d+))?/?$`)

// ParseProxy parses "scheme://[user:pass@]host[:port]".
// Returns nil, false for anything malformed; callers treat that as "no proxy".
func ParseProxy(s string) (*Proxy, bool) {
	m := proxyRe.FindStringSubmatch(s)
	if m == nil || m[4] == "" {
		return nil, false
	}
	protocol, user, pass, host, portStr := m[1], m[2], m[3], m[4], m[5]

	port := defaultProxyPort(protocol)
	if portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p <= 0 || p > 65535 {
			return nil, false
		}
		port = p
	}

	p := &Proxy{Protocol: protocol, Host: host, Port: port}
	if user != "" && pass != "" {
		p.Auth = &ProxyAuth{Username: user, Password: pass}
	}
	return p, true
}

func defaultProxyPort(protocol string) int {
	if protocol == "https" {
		return 443
	}
	return 80
}

// URL renders the proxy in the form accepted by http.ProxyURL.
func (p *Proxy) URL() *url.URL {
	u := &url.URL{
		Scheme: p.Protocol,
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
	}
	if p.Auth != nil {
		u.User = url.UserPassword(p.Auth.Username, p.Auth.Password)
	}
	return u
}

// String returns the proxy address without credentials, safe for logs.
func (p *Proxy) String() string {
	return p.Protocol + "://" + net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}
