package gate

import "testing"

func TestRender(t *testing.T) {
	cases := []struct {
		template, name, want string
	}{
		{"&cNo dropping, %player%!", "Alex", "§cNo dropping, Alex!"},
		{"%player% %player%", "Steve", "Steve Steve"},
		{"&a&lHey &r%player%", "Steve", "§a§lHey §rSteve"},
		{"plain text", "Steve", "plain text"},
		{"%player", "Steve", "%player"},
		{"%player%", "A&B", "A&B"},
		{"", "Steve", ""},
	}
	for _, c := range cases {
		if got := Render(c.template, c.name); got != c.want {
			t.Fatalf("Render(%q, %q) = %q, want %q", c.template, c.name, got, c.want)
		}
	}
}

func TestRenderLeavesOtherCharacters(t *testing.T) {
	const chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!@#$%^*()-_=+[{]};:'\",<.>/?`~"
	if got := Render(chars, "Steve"); got != chars {
		t.Fatalf("Render altered characters: got %q", got)
	}
}
