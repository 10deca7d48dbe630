package netaddr_test

import (
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/dirserve/internal/netaddr"
)

func ipNet(cidr string) *net.IPNet {
	ip, n, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

var _ = Describe("Netaddr", func() {
	Describe("FirstIPv4", func() {
		It("should skip loopback addresses", func() {
			ip, err := netaddr.FirstIPv4([]net.Addr{
				ipNet("127.0.0.1/8"),
				ipNet("192.168.1.20/24"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ip.String()).To(Equal("192.168.1.20"))
		})

		It("should skip IPv6 and link-local addresses", func() {
			ip, err := netaddr.FirstIPv4([]net.Addr{
				ipNet("::1/128"),
				ipNet("fe80::1/64"),
				ipNet("2001:db8::10/64"),
				ipNet("169.254.3.4/16"),
				&net.IPAddr{IP: net.ParseIP("10.0.0.7")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ip.String()).To(Equal("10.0.0.7"))
		})

		It("should return the first match in order", func() {
			ip, err := netaddr.FirstIPv4([]net.Addr{
				ipNet("10.1.1.1/8"),
				ipNet("192.168.0.2/24"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ip.String()).To(Equal("10.1.1.1"))
		})

		It("should fail when only loopback is available", func() {
			ip, err := netaddr.FirstIPv4([]net.Addr{ipNet("127.0.0.1/8"), ipNet("::1/128")})
			Expect(err).To(MatchError(netaddr.ErrNoLocalAddress))
			Expect(ip).To(BeNil())
		})

		It("should fail for no addresses", func() {
			_, err := netaddr.FirstIPv4(nil)
			Expect(err).To(MatchError(netaddr.ErrNoLocalAddress))
		})
	})

	Describe("Banner", func() {
		It("should print both the local and the loopback form", func() {
			Expect(netaddr.Banner(net.ParseIP("192.168.1.20"), 10999)).To(Equal(
				"Server is running at: http://192.168.1.20:10999 or http://127.0.0.1:10999"))
		})
	})
})
