package grid

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/izzyreal/reportgrid/internal/version"
)

const (
	selionProxyClass = "SeLionRemoteProxy"
	notSupported     = "not supported"
)

var (
	slotVersionSuffix = regexp.MustCompile(`:v(.*)$`)
	slotVersionPrefix = regexp.MustCompile(`^(.*):`)
)

// InfoItem is one label/value line of a node card. Hidden items are not
// rendered.
type InfoItem struct {
	Label  string
	Value  string
	Unit   string
	Hidden bool
}

type SlotView struct {
	BrowserType string
	Icon        string
	HasIcon     bool
	Version     string
	Tooltip     string
	Busy        bool
}

type NodeView struct {
	Node        Node
	ProxyClass  string
	HeaderClass string
	VersionInfo string
	Outdated    bool
	Left        []InfoItem
	Right       []InfoItem
	Slots       []SlotView
}

// IconExists reports whether a browser icon file is available.
type IconExists func(name string) bool

// ProxyClass strips the package from a proxy class name.
func ProxyClass(proxy string) string {
	if i := strings.LastIndex(proxy, "."); i >= 0 {
		return proxy[i+1:]
	}
	return proxy
}

// SlotIcon maps a slot browser type such as "internet explorer:v11" to its
// icon file name and version prefix ("v11:").
func SlotIcon(browserType string) (icon, version string) {
	icon = strings.ReplaceAll(slotVersionSuffix.ReplaceAllString(browserType, ""), " ", "_") + ".png"
	version = slotVersionPrefix.ReplaceAllString(browserType, "")
	if version == browserType {
		version = ""
	} else {
		version += ":"
	}
	return icon, version
}

// BuildNodeView prepares a node for the list page. hubVersion may be empty;
// iconExists may be nil, in which case slots fall back to text labels.
func BuildNodeView(n Node, hubVersion string, iconExists IconExists) NodeView {
	v := NodeView{Node: n, ProxyClass: ProxyClass(n.Configuration.Proxy)}

	v.HeaderClass = "header"
	if n.Status == StatusOffline {
		v.HeaderClass += " offline"
	}
	if n.IsShuttingDown {
		v.HeaderClass += " shuttingdown"
	}

	if n.Status == StatusOnline {
		v.VersionInfo = "v" + strings.TrimPrefix(n.Version, "v")
	}
	if n.OS != NotAvailable {
		v.VersionInfo += " on " + n.OS
	}
	v.Outdated = isOutdated(n.Version, hubVersion)

	selion := v.ProxyClass == selionProxyClass
	v.Left = []InfoItem{
		{Label: "Proxy", Value: v.ProxyClass},
		{Label: "Busy", Value: fmt.Sprint(n.IsBusy)},
		selionItem(selion, "Uptime", n.UptimeInMinutes, "min"),
		{Label: "Resource usage", Value: fmt.Sprint(n.PercentResourceUsage), Unit: "%"},
		{Label: "Idle timeout", Value: fmt.Sprint(n.Configuration.Timeout), Unit: "ms"},
		selionItem(selion, "Recycle wait timeout", n.Configuration.NodeRecycleThreadWaitTimeout, "sec"),
		selionItem(selion, "Max new sessions allowed", n.Configuration.UniqueSessionCount, ""),
	}
	v.Right = []InfoItem{
		{Label: "Total slots used", Value: fmt.Sprint(n.TotalUsed)},
		{Label: "Max concurrent slots", Value: fmt.Sprint(n.Configuration.MaxSession)},
		selionItem(selion, "Total sessions started", n.TotalSessionsStarted, ""),
		selionItem(selion, "Total sessions complete", n.TotalSessionsComplete, ""),
		{Label: "Register cycle", Value: fmt.Sprint(n.Configuration.RegisterCycle), Unit: "ms"},
		{Label: "Cleanup cycle", Value: fmt.Sprint(n.Configuration.CleanUpCycle), Unit: "ms"},
	}

	browsers := make([]string, 0, len(n.SlotUsage))
	for b := range n.SlotUsage {
		browsers = append(browsers, b)
	}
	sort.Strings(browsers)
	for _, b := range browsers {
		usage := n.SlotUsage[b]
		icon, version := SlotIcon(b)
		v.Slots = append(v.Slots, SlotView{
			BrowserType: b,
			Icon:        icon,
			HasIcon:     iconExists != nil && iconExists(icon),
			Version:     version,
			Tooltip:     slotTooltip(usage),
			Busy:        usage.Used > 0,
		})
	}
	return v
}

// selionItem hides values only SeLion proxies report when another proxy
// left them unset.
func selionItem(selion bool, label string, value int64, unit string) InfoItem {
	item := InfoItem{Label: label, Value: fmt.Sprint(value), Unit: unit}
	if !selion && (value == 0 || value == -1) {
		item.Value = notSupported
		item.Hidden = true
	}
	return item
}

func slotTooltip(s SlotInfo) string {
	b, _ := json.Marshal(s)
	return strings.ReplaceAll(string(b), `"`, "")
}

// isOutdated reports whether the hub runs a newer semantic version than the
// node. Nodes without a semver version are never flagged.
func isOutdated(nodeVersion, hubVersion string) bool {
	return version.IsNewer(hubVersion, nodeVersion)
}
