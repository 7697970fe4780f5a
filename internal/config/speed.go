package config

import "fmt"

// SpeedPreset represents a named tick interval.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedInsane SpeedPreset = "insane"
)

// SpeedPresets lists the presets from slowest to fastest.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInsane}

// TickIntervalForPreset returns the tick interval in milliseconds for a preset.
func TickIntervalForPreset(preset SpeedPreset) (int, error) {
	switch preset {
	case SpeedSlow:
		return 200, nil
	case SpeedNormal:
		return 120, nil
	case SpeedFast:
		return 70, nil
	case SpeedInsane:
		return 35, nil
	default:
		return 0, fmt.Errorf("config: unknown speed preset %q", preset)
	}
}

// ApplySpeedPreset overrides the tick interval with a preset.
// An empty preset leaves the configuration unchanged.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) error {
	if preset == "" {
		return nil
	}
	ms, err := TickIntervalForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Play.TickIntervalMS = ms
	return nil
}
