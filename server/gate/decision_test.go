package gate

import (
	"slices"
	"testing"
)

var testItems = []string{
	"minecraft:stone",
	"minecraft:oak_log",
	"minecraft:diamond_sword",
	"minecraft:apple",
	"minecraft:torch",
	"minecraft:ender_pearl",
}

func TestEvaluateBlockingDisabled(t *testing.T) {
	for _, conf := range []Config{
		{},
		{ItemAllowlisting: true},
		{ItemAllowlisting: true, ItemAllowlist: []string{"minecraft:stone"}},
		{WarnPlayerOnDrop: true, WarningMessage: "no"},
	} {
		for _, it := range testItems {
			if got := Evaluate(conf, it); got != Allow {
				t.Fatalf("Evaluate(%+v, %q) = %v, want allow", conf, it, got)
			}
		}
	}
}

func TestEvaluateBlockingWithoutAllowlisting(t *testing.T) {
	conf := Config{DisableItemDrops: true, ItemAllowlist: slices.Clone(testItems)}
	for _, it := range testItems {
		if got := Evaluate(conf, it); got != Deny {
			t.Fatalf("Evaluate(%q) = %v, want deny", it, got)
		}
	}
}

func TestEvaluateAllowlistSubsets(t *testing.T) {
	n := len(testItems)
	for mask := 0; mask < 1<<n; mask++ {
		var allowlist []string
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				allowlist = append(allowlist, testItems[i])
			}
		}
		p := NewPolicy(Config{DisableItemDrops: true, ItemAllowlisting: true, ItemAllowlist: allowlist})
		for i, it := range testItems {
			want := Deny
			if mask&(1<<i) != 0 {
				want = Allow
			}
			if got := p.Evaluate(it); got != want {
				t.Fatalf("mask %b: Evaluate(%q) = %v, want %v", mask, it, got, want)
			}
		}
	}
}

func TestEvaluateAllowlistScenario(t *testing.T) {
	conf := Config{DisableItemDrops: true, ItemAllowlisting: true, ItemAllowlist: []string{"STONE"}}
	if got := Evaluate(conf, "STONE"); got != Allow {
		t.Fatalf("dropping STONE = %v, want allow", got)
	}
	if got := Evaluate(conf, "minecraft:stone"); got != Allow {
		t.Fatalf("dropping minecraft:stone = %v, want allow", got)
	}
	if got := Evaluate(conf, "WOOD"); got != Deny {
		t.Fatalf("dropping WOOD = %v, want deny", got)
	}
}

func TestPolicyCopiesAllowlist(t *testing.T) {
	allowlist := []string{"minecraft:apple"}
	p := NewPolicy(Config{DisableItemDrops: true, ItemAllowlisting: true, ItemAllowlist: allowlist})
	allowlist[0] = "minecraft:torch"

	if got := p.Evaluate("minecraft:apple"); got != Allow {
		t.Fatalf("Evaluate(apple) after mutating source = %v, want allow", got)
	}
	if got := p.Config().ItemAllowlist[0]; got != "minecraft:apple" {
		t.Fatalf("Config().ItemAllowlist[0] = %q, want minecraft:apple", got)
	}
}

func TestCanonicalItem(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"   ":               "",
		"STONE":             "stone",
		"stone":             "stone",
		"minecraft:stone":   "stone",
		"Minecraft:Stone":   "stone",
		"  OAK_LOG ":        "oak_log",
		"custom:ruby":       "custom:ruby",
		"minecraft:custom:": "custom:",
	}
	for input, want := range cases {
		if got := CanonicalItem(input); got != want {
			t.Fatalf("CanonicalItem(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDecisionString(t *testing.T) {
	if Allow.String() != "allow" || Deny.String() != "deny" {
		t.Fatalf("unexpected decision strings %q, %q", Allow, Deny)
	}
}
