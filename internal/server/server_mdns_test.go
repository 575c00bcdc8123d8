package server

import (
	"net"
	"testing"

	"github.com/izzyreal/reportgrid/internal/config"
)

func TestListenPortFromAddr(t *testing.T) {
	if got := listenPortFromAddr(""); got != "8080" {
		t.Fatalf("expected default port 8080, got %q", got)
	}
	if got := listenPortFromAddr(":9000"); got != "9000" {
		t.Fatalf("expected :9000 to parse to 9000, got %q", got)
	}
	if got := listenPortFromAddr("127.0.0.1:7777"); got != "7777" {
		t.Fatalf("expected host:port to parse port 7777, got %q", got)
	}
	if got := listenPortFromAddr("not-a-port:"); got != "" {
		t.Fatalf("expected invalid addr parse to empty, got %q", got)
	}
}

func TestFilterAdvertiseIPs(t *testing.T) {
	mustNet := func(cidr string) net.Addr {
		ip, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			t.Fatalf("parse %s: %v", cidr, err)
		}
		ipNet.IP = ip
		return ipNet
	}
	got := filterAdvertiseIPs([]net.Addr{
		mustNet("127.0.0.1/8"),
		mustNet("fe80::1/64"),
		mustNet("fd00::5/64"),
		mustNet("192.168.1.20/24"),
		mustNet("192.168.1.20/24"),
		mustNet("10.0.0.3/8"),
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 addresses, got %v", got)
	}
	if got[0].String() != "10.0.0.3" || got[1].String() != "192.168.1.20" || got[2].String() != "fd00::5" {
		t.Fatalf("expected IPv4 first in lexical order, got %v", got)
	}
	if filterAdvertiseIPs(nil) != nil {
		t.Fatalf("expected nil for no addresses")
	}
}

func TestStartMDNSAdvertiserDisabled(t *testing.T) {
	stop := startMDNSAdvertiser(config.Server{Addr: ":8080", MDNS: false})
	stop()
	if got := mdnsInstanceName(" lab-grid "); got != "lab-grid" {
		t.Fatalf("expected configured instance, got %q", got)
	}
}
