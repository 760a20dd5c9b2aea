package logging

import (
	"sort"
	"strings"
)

// NamespaceSeparator delimits the segments of a hierarchical logger
// namespace, e.g. "frontend::session::auth".
const NamespaceSeparator = "::"

// Decision is the outcome of a TargetFilter query.
type Decision int

const (
	// Neutral means the filter has no objection; the record proceeds.
	Neutral Decision = iota
	// Accept is an explicit allow. Reserved for rule forms that force a
	// record through; the current rule set never produces it.
	Accept
	// Reject drops the record.
	Reject
)

// String returns the decision name for test output and logs.
func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "neutral"
	}
}

// TargetFilter decides whether records from a namespace reach an
// appender. It holds a blacklist and a whitelist of namespace strings
// and walks a queried namespace up its hierarchy until one of them
// matches. Immutable after construction; safe for concurrent use
// without locking.
type TargetFilter struct {
	blacklist map[string]struct{}
	whitelist map[string]struct{}
}

// ParseTargetFilter builds a filter from comma-separated rule text. An
// entry prefixed with "-" is a blacklist entry; "+" or no prefix is a
// whitelist entry. Any text is accepted: an entry that matches nothing
// is merely inert, and duplicates coalesce.
func ParseTargetFilter(text string) *TargetFilter {
	f := &TargetFilter{
		blacklist: make(map[string]struct{}),
		whitelist: make(map[string]struct{}),
	}
	for _, entry := range strings.Split(text, ",") {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == "":
		case strings.HasPrefix(entry, "-"):
			f.blacklist[entry[1:]] = struct{}{}
		case strings.HasPrefix(entry, "+"):
			f.whitelist[entry[1:]] = struct{}{}
		default:
			f.whitelist[entry] = struct{}{}
		}
	}
	return f
}

// Decide walks the namespace from most to least specific. At each level
// an exact blacklist match wins (Reject), then an exact whitelist match
// (Neutral); otherwise the last segment is stripped and the walk
// continues, so the nearest matching ancestor decides. A namespace that
// reaches its root unmatched is Neutral when the whitelist is unused and
// Reject when the operator has whitelisted anything, since a non-empty
// whitelist means only selected namespaces are admitted.
func (f *TargetFilter) Decide(namespace string) Decision {
	ns := namespace
	for {
		if _, ok := f.blacklist[ns]; ok {
			return Reject
		}
		if _, ok := f.whitelist[ns]; ok {
			return Neutral
		}
		i := strings.LastIndex(ns, NamespaceSeparator)
		if i < 0 {
			if len(f.whitelist) == 0 {
				return Neutral
			}
			return Reject
		}
		ns = ns[:i]
	}
}

// Rules returns the filter's rule text in canonical form, blacklist
// entries first. Used by the levels API to report the active filter.
func (f *TargetFilter) Rules() string {
	black := make([]string, 0, len(f.blacklist))
	for ns := range f.blacklist {
		black = append(black, "-"+ns)
	}
	white := make([]string, 0, len(f.whitelist))
	for ns := range f.whitelist {
		white = append(white, ns)
	}
	sort.Strings(black)
	sort.Strings(white)
	return strings.Join(append(black, white...), ",")
}
