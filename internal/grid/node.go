// Package grid holds the grid administration pieces: the node registry and
// its list view, forced node restarts, auto-upgrade download validation and
// the Sauce Labs configuration file.
package grid

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	NotAvailable  = "not available"
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type SlotInfo struct {
	Used         int `json:"used"`
	PercentUsed  int `json:"percentUsed"`
	MaxInstances int `json:"maxInstances"`
}

type NodeConfiguration struct {
	Proxy                        string `json:"proxy"`
	RemoteHost                   string `json:"remoteHost"`
	Timeout                      int64  `json:"timeout"`
	NodeRecycleThreadWaitTimeout int64  `json:"nodeRecycleThreadWaitTimeout"`
	UniqueSessionCount           int64  `json:"uniqueSessionCount"`
	MaxSession                   int64  `json:"maxSession"`
	RegisterCycle                int64  `json:"registerCycle"`
	CleanUpCycle                 int64  `json:"cleanUpCycle"`
}

// Node is what a grid node reports about itself on every heartbeat.
type Node struct {
	ID                    string              `json:"id"`
	LogsLocation          string              `json:"logsLocation"`
	IsBusy                bool                `json:"isBusy"`
	PercentResourceUsage  float64             `json:"percentResourceUsage"`
	TotalUsed             int                 `json:"totalUsed"`
	IsShuttingDown        bool                `json:"isShuttingDown"`
	TotalSessionsComplete int64               `json:"totalSessionsComplete"`
	TotalSessionsStarted  int64               `json:"totalSessionsStarted"`
	UptimeInMinutes       int64               `json:"uptimeInMinutes"`
	Configuration         NodeConfiguration   `json:"configuration"`
	Status                string              `json:"status"`
	Version               string              `json:"version"`
	OS                    string              `json:"os"`
	SlotUsage             map[string]SlotInfo `json:"slotUsage,omitempty"`
	LastSeenUTC           time.Time           `json:"lastSeenUtc"`
}

var (
	ErrNodeIDRequired  = errors.New("node id is required")
	ErrNoNodesSelected = errors.New("no nodes selected")
)

// Registry is the set of nodes known to the hub.
type Registry struct {
	mu    sync.Mutex
	nodes map[string]Node
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{nodes: map[string]Node{}, now: time.Now}
}

// Register records a heartbeat. Unreported text fields read "not available";
// a node that was told to restart stays marked until it registers again as
// online.
func (r *Registry) Register(n Node) (Node, error) {
	n.ID = strings.TrimSpace(n.ID)
	if n.ID == "" {
		return Node{}, ErrNodeIDRequired
	}
	if strings.TrimSpace(n.Configuration.RemoteHost) == "" {
		n.Configuration.RemoteHost = n.ID
	}
	n.LogsLocation = orNotAvailable(n.LogsLocation)
	n.Version = orNotAvailable(n.Version)
	n.OS = orNotAvailable(n.OS)
	switch strings.ToLower(strings.TrimSpace(n.Status)) {
	case StatusOnline:
		n.Status = StatusOnline
	case StatusOffline:
		n.Status = StatusOffline
	default:
		n.Status = NotAvailable
	}
	if n.LastSeenUTC.IsZero() {
		n.LastSeenUTC = r.now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.nodes[n.ID]; ok && prev.IsShuttingDown && n.Status != StatusOnline {
		n.IsShuttingDown = true
	}
	r.nodes[n.ID] = n
	return n, nil
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// Nodes returns a snapshot sorted by id.
func (r *Registry) Nodes() []Node {
	r.mu.Lock()
	out := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Get(id string) (Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[id]
	return n, ok
}

// ForceRestart marks every known node in ids as shutting down and returns
// the ids it marked. Unknown ids are skipped.
func (r *Registry) ForceRestart(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, ErrNoNodesSelected
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var restarted []string
	for _, id := range ids {
		n, ok := r.nodes[id]
		if !ok {
			continue
		}
		n.IsShuttingDown = true
		r.nodes[id] = n
		restarted = append(restarted, id)
	}
	return restarted, nil
}
