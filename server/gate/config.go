package gate

import (
	"fmt"
	"slices"
	"time"
)

// Config holds the settings that control which item drops are blocked and how
// players are warned about it. Config is decoded from the dropstop TOML file.
// Keys that are missing from the file decode to their zero value, so every
// feature that is not explicitly turned on stays disabled and drops are
// allowed.
type Config struct {
	// DisableItemDrops specifies if players should be prevented from dropping
	// items at all. If false, every drop is allowed and all other settings
	// are ignored.
	DisableItemDrops bool `toml:"disable-item-drops"`
	// ItemAllowlisting specifies if the items in ItemAllowlist may still be
	// dropped while DisableItemDrops is true.
	ItemAllowlisting bool `toml:"item-allowlisting"`
	// ItemAllowlist is a list of item identifiers, such as "minecraft:stone"
	// or "STONE", that are exempt from blocking when ItemAllowlisting is
	// enabled. Identifiers are compared case-insensitively and the minecraft
	// namespace is optional.
	ItemAllowlist []string `toml:"item-allowlist"`
	// WarnPlayerOnDrop specifies if a player should receive WarningMessage
	// when one of their drops is cancelled.
	WarnPlayerOnDrop bool `toml:"warn-player-on-drop"`
	// WarningMessage is the message sent to a player whose drop was cancelled.
	// Any %player% is replaced with the name of the player and & may be used
	// in place of § for formatting codes. WarningMessage must not be empty if
	// WarnPlayerOnDrop is true.
	WarningMessage string `toml:"warning-message"`
	// WarningTimeout is the minimum amount of seconds between two warnings
	// sent to the same player.
	WarningTimeout int `toml:"warning-timeout"`
	// CooldownExpiry is the amount of seconds after which the warning
	// timestamp of a player is forgotten. If 0, timestamps are kept for the
	// lifetime of the process.
	CooldownExpiry int `toml:"cooldown-expiry"`
}

// DefaultConfig returns the configuration written when no configuration file
// exists yet.
func DefaultConfig() Config {
	return Config{
		DisableItemDrops: true,
		ItemAllowlisting: false,
		ItemAllowlist:    []string{},
		WarnPlayerOnDrop: true,
		WarningMessage:   "&cYou cannot drop items on this server, %player%!",
		WarningTimeout:   5,
	}
}

// Validate checks the configuration for combinations of settings that cannot
// work. The returned error wraps ErrConfiguration.
func (conf Config) Validate() error {
	if conf.WarnPlayerOnDrop && conf.WarningMessage == "" {
		return fmt.Errorf("%w: warning-message must not be empty while warn-player-on-drop is enabled; set warn-player-on-drop to false to disable warnings", ErrConfiguration)
	}
	if conf.WarningTimeout < 0 {
		return fmt.Errorf("%w: warning-timeout must not be negative, got %d", ErrConfiguration, conf.WarningTimeout)
	}
	if conf.CooldownExpiry < 0 {
		return fmt.Errorf("%w: cooldown-expiry must not be negative, got %d", ErrConfiguration, conf.CooldownExpiry)
	}
	return nil
}

// Window returns the minimum time that must pass between two warnings sent to
// the same player. CooldownBuffer is added to the configured timeout.
func (conf Config) Window() time.Duration {
	return time.Duration(max(conf.WarningTimeout, 0))*time.Second + CooldownBuffer
}

// Expiry returns the age after which a cooldown entry may be removed, or 0 if
// entries should never be removed. The expiry is never shorter than Window.
func (conf Config) Expiry() time.Duration {
	if conf.CooldownExpiry <= 0 {
		return 0
	}
	return max(time.Duration(conf.CooldownExpiry)*time.Second, conf.Window())
}

// clone returns a copy of conf that does not share the allowlist slice.
func (conf Config) clone() Config {
	conf.ItemAllowlist = slices.Clone(conf.ItemAllowlist)
	return conf
}
