// Package featureflags evaluates runtime feature flags from configuration.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// NotifyDeclinedRequests turns on a notice to users whose join request was declined.
const NotifyDeclinedRequests = "notify_declined_requests"

// Flag is a flag this service knows how to evaluate.
type Flag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var known = []Flag{
	{Name: NotifyDeclinedRequests, Description: "Notify users when a captain declines their join request"},
}

// Known lists the flags this service evaluates, sorted by name.
func Known() []Flag {
	out := make([]Flag, len(known))
	copy(out, known)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func isKnown(name string) bool {
	for _, f := range known {
		if f.Name == name {
			return true
		}
	}
	return false
}

// rule is a parsed flag value. percent is 0-100; on and off parse to 100
// and 0.
type rule struct {
	raw     string
	percent int
}

func parseRule(value string) (rule, bool) {
	switch value {
	case "on", "true", "1":
		return rule{raw: value, percent: 100}, true
	case "off", "false", "0":
		return rule{raw: value}, true
	}
	pctRaw, found := strings.CutSuffix(value, "%")
	if !found {
		return rule{raw: value}, false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct < 0 || pct > 100 {
		return rule{raw: value}, false
	}
	return rule{raw: value, percent: pct}, true
}

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "notify_declined_requests=25%"
type Manager struct {
	rules    map[string]rule
	warnings []string
}

// NewManager creates a feature-flag manager from a comma-separated config
// string. Malformed values evaluate as off; they and any names the service
// does not know are reported by Warnings.
func NewManager(raw string) *Manager {
	m := &Manager{rules: make(map[string]rule)}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key, value = normalize(key), normalize(value)
		if !ok || key == "" || value == "" {
			m.warnings = append(m.warnings, fmt.Sprintf("ignoring malformed entry %q", pair))
			continue
		}
		r, valid := parseRule(value)
		if !valid {
			m.warnings = append(m.warnings, fmt.Sprintf("flag %s: unsupported value %q, treated as off", key, value))
		}
		if !isKnown(key) {
			m.warnings = append(m.warnings, fmt.Sprintf("flag %s: not used by this service", key))
		}
		m.rules[key] = r
	}

	return m
}

// Warnings describes configuration entries that had no effect.
func (m *Manager) Warnings() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.warnings...)
}

// Enabled returns whether a flag is enabled for a given user. Partial
// rollouts bucket users deterministically by name, so an anonymous caller
// only sees flags that are fully on.
func (m *Manager) Enabled(name, username string) bool {
	if m == nil {
		return false
	}

	r, ok := m.rules[normalize(name)]
	switch {
	case !ok || r.percent <= 0:
		return false
	case r.percent >= 100:
		return true
	case username == "":
		return false
	}
	return rolloutBucket(name, username) < r.percent
}

// Raw returns a copy of configured flag values.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.rules))
	for k, r := range m.rules {
		out[k] = r.raw
	}
	return out
}

// Snapshot returns the evaluated state of every known and every configured
// flag for one user.
func (m *Manager) Snapshot(username string) map[string]bool {
	out := make(map[string]bool, len(known))
	for _, f := range known {
		out[f.Name] = m.Enabled(f.Name, username)
	}
	if m != nil {
		for name := range m.rules {
			out[name] = m.Enabled(name, username)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name, username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + username))
	return int(h.Sum32() % 100)
}
