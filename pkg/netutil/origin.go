package netutil

import (
	"fmt"
	"net"
)

var privateLAN = mustParseCIDR("192.168.0.0/16")

// LocalLANAddress returns the first IPv4 address of this host inside 192.168.0.0/16,
// or "" when the host has none.
func LocalLANAddress() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("failed to list interface addresses: %w", err)
	}
	return firstLANAddress(addrs), nil
}

// DashboardOrigin builds the origin the dashboard frontend is served from.
func DashboardOrigin(host string, port int) string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(port)))
}

func firstLANAddress(addrs []net.Addr) string {
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil && privateLAN.Contains(ip4) {
			return ip4.String()
		}
	}
	return ""
}

func mustParseCIDR(s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return n
}
