package firewall

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultSuspicionTTL        = 24 * time.Hour
	DefaultEscalationThreshold = 10
)

// SuspicionRecord tracks recent malicious-pattern activity for one IP.
type SuspicionRecord struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Count     int
}

type RegistryConfig struct {
	// SuspicionTTL is how long a suspicious entry survives after its last
	// sighting before it is pruned. Zero selects the default.
	SuspicionTTL time.Duration
	// EscalationThreshold is the number of suspicious marks inside the TTL
	// window after which an IP is moved to the denylist. Negative disables
	// escalation; zero selects the default.
	EscalationThreshold int
}

// Registry holds the process-wide IP allow/deny sets and the advisory
// suspicious-activity map. The denylist always wins; a non-empty allowlist
// closes the default-permit policy to its members.
type Registry struct {
	mu            sync.RWMutex
	allow         map[string]struct{}
	deny          map[string]struct{}
	suspicious    map[string]SuspicionRecord
	ttl           time.Duration
	escalateAfter int

	now func() time.Time
}

func NewRegistry(cfg RegistryConfig) *Registry {
	ttl := cfg.SuspicionTTL
	if ttl <= 0 {
		ttl = DefaultSuspicionTTL
	}
	threshold := cfg.EscalationThreshold
	if threshold == 0 {
		threshold = DefaultEscalationThreshold
	}

	return &Registry{
		allow:         make(map[string]struct{}),
		deny:          make(map[string]struct{}),
		suspicious:    make(map[string]SuspicionRecord),
		ttl:           ttl,
		escalateAfter: threshold,
		now:           time.Now,
	}
}

func normalizeIP(ip string) string {
	return strings.TrimSpace(ip)
}

func (r *Registry) AddAllow(ip string) {
	ip = normalizeIP(ip)
	if ip == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allow[ip] = struct{}{}
}

func (r *Registry) RemoveAllow(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.allow, normalizeIP(ip))
}

func (r *Registry) AddDeny(ip string) {
	ip = normalizeIP(ip)
	if ip == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deny[ip] = struct{}{}
}

func (r *Registry) RemoveDeny(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.deny, normalizeIP(ip))
}

// IsAllowed applies the deny-first, then allow-only-if-configured policy.
func (r *Registry) IsAllowed(ip string) bool {
	ip = normalizeIP(ip)
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, denied := r.deny[ip]; denied {
		return false
	}
	if len(r.allow) > 0 {
		_, listed := r.allow[ip]
		return listed
	}
	return true
}

// MarkSuspicious records the current time against ip with last-seen
// semantics, prunes entries outside the TTL window, and escalates the IP to
// the denylist once it exceeds the configured threshold.
func (r *Registry) MarkSuspicious(ip string) {
	ip = normalizeIP(ip)
	if ip == "" {
		return
	}

	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked(now)

	record := r.suspicious[ip]
	if record.Count == 0 {
		record.FirstSeen = now
	}
	record.LastSeen = now
	record.Count++
	r.suspicious[ip] = record

	if r.escalateAfter > 0 && record.Count >= r.escalateAfter {
		if _, denied := r.deny[ip]; !denied {
			r.deny[ip] = struct{}{}
			log.Warn("Escalated suspicious IP to denylist", "ip", ip, "marks", record.Count, "window", r.ttl)
		}
	}
}

func (r *Registry) pruneLocked(now time.Time) {
	for ip, record := range r.suspicious {
		if now.Sub(record.LastSeen) > r.ttl {
			delete(r.suspicious, ip)
		}
	}
}

// Prune drops suspicious entries whose last sighting fell out of the TTL
// window and reports how many were removed.
func (r *Registry) Prune() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.suspicious)
	r.pruneLocked(now)
	return before - len(r.suspicious)
}

// Suspicious returns a snapshot of the suspicious-activity map.
func (r *Registry) Suspicious() map[string]SuspicionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]SuspicionRecord, len(r.suspicious))
	for ip, record := range r.suspicious {
		out[ip] = record
	}
	return out
}

// Snapshot returns sorted copies of the allow and deny sets.
func (r *Registry) Snapshot() (allow, deny []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allow = make([]string, 0, len(r.allow))
	for ip := range r.allow {
		allow = append(allow, ip)
	}
	deny = make([]string, 0, len(r.deny))
	for ip := range r.deny {
		deny = append(deny, ip)
	}
	sort.Strings(allow)
	sort.Strings(deny)
	return allow, deny
}

// ReplaceRules swaps both sets atomically. Used when a peer instance
// broadcasts its rule state.
func (r *Registry) ReplaceRules(allow, deny []string) {
	newAllow := make(map[string]struct{}, len(allow))
	for _, ip := range allow {
		if ip = normalizeIP(ip); ip != "" {
			newAllow[ip] = struct{}{}
		}
	}
	newDeny := make(map[string]struct{}, len(deny))
	for _, ip := range deny {
		if ip = normalizeIP(ip); ip != "" {
			newDeny[ip] = struct{}{}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.allow = newAllow
	r.deny = newDeny
}
