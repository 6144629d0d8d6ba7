package gate

import (
	"strings"

	"golang.org/x/text/cases"
)

// Decision is the outcome of evaluating a drop attempt.
type Decision uint8

const (
	// Allow lets the drop happen.
	Allow Decision = iota
	// Deny cancels the drop.
	Deny
)

// String ...
func (d Decision) String() string {
	if d == Deny {
		return "deny"
	}
	return "allow"
}

// Policy is the compiled, immutable form of a Config. It is safe for use by
// multiple goroutines.
type Policy struct {
	conf      Config
	allowlist map[string]struct{}
}

// NewPolicy compiles conf into a Policy. The allowlist of conf is copied.
func NewPolicy(conf Config) *Policy {
	p := &Policy{conf: conf.clone(), allowlist: make(map[string]struct{}, len(conf.ItemAllowlist))}
	for _, id := range conf.ItemAllowlist {
		if c := CanonicalItem(id); c != "" {
			p.allowlist[c] = struct{}{}
		}
	}
	return p
}

// Config returns a copy of the Config the Policy was compiled from.
func (p *Policy) Config() Config {
	return p.conf.clone()
}

// Allowlisted reports if the item passed is part of the allowlist, regardless
// of whether allowlisting is enabled.
func (p *Policy) Allowlisted(itemType string) bool {
	_, ok := p.allowlist[CanonicalItem(itemType)]
	return ok
}

// Evaluate decides if an item of the type passed may be dropped. Evaluate has
// no side effects.
func (p *Policy) Evaluate(itemType string) Decision {
	switch {
	case !p.conf.DisableItemDrops:
		return Allow
	case p.conf.ItemAllowlisting:
		if p.Allowlisted(itemType) {
			return Allow
		}
		return Deny
	default:
		return Deny
	}
}

// Evaluate decides if an item of the type passed may be dropped under conf.
// Callers evaluating many drops against the same Config should compile it
// once using NewPolicy.
func Evaluate(conf Config, itemType string) Decision {
	return NewPolicy(conf).Evaluate(itemType)
}

// defaultNamespace is the namespace assumed for item identifiers without one.
const defaultNamespace = "minecraft:"

// CanonicalItem returns the form of an item identifier used for allowlist
// comparisons: surrounding whitespace is removed, the identifier is case
// folded and the minecraft namespace is stripped. "STONE", "stone" and
// "minecraft:stone" therefore all map to "stone".
func CanonicalItem(id string) string {
	// A Caser holds state, so a new one is created for every call.
	c := cases.Fold().String(strings.TrimSpace(id))
	return strings.TrimPrefix(c, defaultNamespace)
}
