package server

import (
	"log/slog"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/mdns"

	"github.com/izzyreal/reportgrid/internal/config"
	"github.com/izzyreal/reportgrid/internal/version"
)

const mdnsService = "_reportgrid._tcp"

// startMDNSAdvertiser announces the server on the local network and returns
// a stop function. It is a no-op when disabled or the port is unusable.
func startMDNSAdvertiser(cfg config.Server) func() {
	if !cfg.MDNS {
		return func() {}
	}

	portNum, err := strconv.Atoi(listenPortFromAddr(cfg.Addr))
	if err != nil {
		return func() {}
	}

	instance := mdnsInstanceName(cfg.MDNSInstance)
	meta := []string{
		"name=reportgrid",
		"api_version=1",
		"version=" + version.Current(),
	}
	service, err := mdns.NewMDNSService(instance, mdnsService, "", "", portNum, discoverAdvertiseIPs(), meta)
	if err != nil {
		slog.Error("mdns advertise service setup failed", "error", err)
		return func() {}
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		slog.Error("mdns advertise start failed", "error", err)
		return func() {}
	}
	slog.Info("mdns advertising enabled", "service", mdnsService, "instance", instance, "port", portNum)

	return func() {
		server.Shutdown()
	}
}

func mdnsInstanceName(configured string) string {
	if v := strings.TrimSpace(configured); v != "" {
		return v
	}
	host, _ := os.Hostname()
	if strings.TrimSpace(host) == "" {
		return "reportgrid"
	}
	return "reportgrid-" + host
}

func discoverAdvertiseIPs() []net.IP {
	ifAddrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	return filterAdvertiseIPs(ifAddrs)
}

func filterAdvertiseIPs(addrs []net.Addr) []net.IP {
	seen := map[string]struct{}{}
	out := make([]net.IP, 0, len(addrs))
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet == nil || ipNet.IP == nil {
			continue
		}
		ip := ipNet.IP
		if ip.IsLoopback() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			continue
		}
		normalized := ip.To16()
		if normalized == nil {
			continue
		}
		key := normalized.String()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool {
		ai := out[i].To4() != nil
		aj := out[j].To4() != nil
		if ai != aj {
			return ai
		}
		return out[i].String() < out[j].String()
	})
	return out
}

func listenPortFromAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "8080"
	}
	if strings.HasPrefix(addr, ":") {
		return strings.TrimPrefix(addr, ":")
	}
	if strings.Count(addr, ":") == 0 {
		return addr
	}
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return p
}
