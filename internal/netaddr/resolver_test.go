package netaddr

import (
	"errors"
	"testing"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
)

func fixedSource(stats psnet.InterfaceStatList, err error) InterfaceSource {
	return func() (psnet.InterfaceStatList, error) {
		return stats, err
	}
}

func TestResolveJoinsNonLoopbackAddresses(t *testing.T) {
	resolver := NewResolverWithSource(fixedSource(psnet.InterfaceStatList{
		{
			Name:  "lo",
			Flags: []string{"up", "loopback"},
			Addrs: []psnet.InterfaceAddr{{Addr: "127.0.0.1/8"}},
		},
		{
			Name:  "eth0",
			Flags: []string{"up", "broadcast"},
			Addrs: []psnet.InterfaceAddr{
				{Addr: "192.168.1.5/24"},
				{Addr: "fe80::1/64"},
			},
		},
		{
			Name:  "eth1",
			Flags: []string{"up", "broadcast"},
			Addrs: []psnet.InterfaceAddr{{Addr: "10.0.0.7/8"}},
		},
	}, nil))

	assert.Equal(t, "192.168.1.5 fe80::1 10.0.0.7", resolver.Resolve())
}

func TestResolveFallsBackToLoopback(t *testing.T) {
	tests := []struct {
		name   string
		source InterfaceSource
	}{
		{
			name:   "no interfaces",
			source: fixedSource(psnet.InterfaceStatList{}, nil),
		},
		{
			name: "loopback only",
			source: fixedSource(psnet.InterfaceStatList{
				{
					Name:  "lo",
					Flags: []string{"up", "loopback"},
					Addrs: []psnet.InterfaceAddr{{Addr: "127.0.0.1/8"}},
				},
			}, nil),
		},
		{
			name:   "enumeration failure",
			source: fixedSource(nil, errors.New("netlink broken")),
		},
		{
			name: "interface with unparseable address",
			source: fixedSource(psnet.InterfaceStatList{
				{
					Name:  "eth0",
					Flags: []string{"up"},
					Addrs: []psnet.InterfaceAddr{{Addr: "not-an-address"}},
				},
			}, nil),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolverWithSource(tt.source)
			assert.Equal(t, Loopback, resolver.Resolve())
		})
	}
}

func TestResolvePassesThroughBareIPs(t *testing.T) {
	resolver := NewResolverWithSource(fixedSource(psnet.InterfaceStatList{
		{
			Name:  "eth0",
			Flags: []string{"up"},
			Addrs: []psnet.InterfaceAddr{{Addr: "203.0.113.9"}},
		},
	}, nil))

	assert.Equal(t, "203.0.113.9", resolver.Resolve())
}

func TestResolveRealInterfaces(t *testing.T) {
	// Whatever the host looks like, the contract holds: non-empty, no error
	// path.
	resolver := NewResolver()
	assert.NotEmpty(t, resolver.Resolve())
}
