package gate

import "strings"

const (
	// PlayerPlaceholder is replaced with the name of the player in a warning
	// message.
	PlayerPlaceholder = "%player%"
	// FormatMarker may be used in a warning message in place of FormatEscape.
	FormatMarker = "&"
	// FormatEscape is the character that starts a formatting code in
	// Minecraft text.
	FormatEscape = "§"
)

// Render produces the warning message sent to the player with the name
// passed. Every PlayerPlaceholder is replaced with name and every FormatMarker
// with FormatEscape. Replacements happen in a single pass, so a name holding a
// FormatMarker is sent as is.
func Render(template, name string) string {
	return strings.NewReplacer(FormatMarker, FormatEscape, PlayerPlaceholder, name).Replace(template)
}
