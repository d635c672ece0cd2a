// Package netaddr enumerates the host's own network addresses for use in the
// web server's allow-list.
package netaddr

import (
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// Loopback is the fallback address used when the host has no usable
// non-loopback interfaces. Access is then limited to the host itself.
const Loopback = "127.0.0.1"

// InterfaceSource returns the host's network interfaces. Injectable so tests
// can supply synthetic interface lists.
type InterfaceSource func() (psnet.InterfaceStatList, error)

// Resolver gathers every IPv4/IPv6 address bound to a non-loopback interface.
type Resolver struct {
	interfaces InterfaceSource
}

func NewResolver() *Resolver {
	return &Resolver{interfaces: psnet.Interfaces}
}

// NewResolverWithSource creates a resolver backed by a custom interface source.
func NewResolverWithSource(source InterfaceSource) *Resolver {
	return &Resolver{interfaces: source}
}

// Resolve returns a space-joined string of every address on every
// non-loopback interface. There is no error path: an empty or unreadable
// interface list falls back to the loopback address.
func (r *Resolver) Resolve() string {
	stats, err := r.interfaces()
	if err != nil {
		return Loopback
	}

	var addrs []string
	for _, iface := range stats {
		if isLoopback(iface) {
			continue
		}
		for _, addr := range iface.Addrs {
			if ip := stripPrefix(addr.Addr); ip != "" {
				addrs = append(addrs, ip)
			}
		}
	}

	if len(addrs) == 0 {
		return Loopback
	}
	return strings.Join(addrs, " ")
}

func isLoopback(iface psnet.InterfaceStat) bool {
	for _, flag := range iface.Flags {
		if flag == "loopback" {
			return true
		}
	}
	return false
}

// stripPrefix reduces a CIDR-formatted interface address ("10.0.0.5/24") to
// its bare IP literal. A non-CIDR address passes through if it parses as an IP.
func stripPrefix(addr string) string {
	if ip, _, err := net.ParseCIDR(addr); err == nil {
		return ip.String()
	}
	if ip := net.ParseIP(addr); ip != nil {
		return ip.String()
	}
	return ""
}
