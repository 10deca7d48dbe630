package netaddr

import (
	"errors"
	"fmt"
	"net"

	"github.com/xplshn/tracerr2"
)

var ErrNoLocalAddress = errors.New("no non-loopback IPv4 address found")

// LocalIPv4 returns the first non-loopback IPv4 address of this host.
func LocalIPv4() (net.IP, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, tracerr.Wrapf(err, "failed to list interface addresses")
	}

	return FirstIPv4(addrs)
}

// FirstIPv4 picks the first usable IPv4 address from addrs, skipping loopback
// and link-local ones.
func FirstIPv4(addrs []net.Addr) (net.IP, error) {
	for _, addr := range addrs {
		var ip net.IP

		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}

		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}

		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
	}

	return nil, ErrNoLocalAddress
}

// Banner is the startup line telling the user where the server can be reached.
func Banner(ip net.IP, port int) string {
	return fmt.Sprintf("Server is running at: http://%s:%d or http://127.0.0.1:%d", ip, port, port)
}
