package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/recaplabs/claude-recap/internal/story"
)

const CurrentVersion = 1

// Settings is the on-disk user configuration: the wrapped display name and
// optional classifier threshold overrides. Zero-valued override fields keep
// the built-in defaults.
type Settings struct {
	Version     int        `json:"version"`
	DisplayName string     `json:"displayName,omitempty"`
	Thresholds  *Overrides `json:"thresholds,omitempty"`
}

type Overrides struct {
	RapidPace               float64 `json:"rapidPace,omitempty"`
	SteadyPace              float64 `json:"steadyPace,omitempty"`
	DeliberatePace          float64 `json:"deliberatePace,omitempty"`
	HeavyDelegation         float64 `json:"heavyDelegation,omitempty"`
	BalancedDelegation      float64 `json:"balancedDelegation,omitempty"`
	MarathonHours           float64 `json:"marathonHours,omitempty"`
	ExtendedHours           float64 `json:"extendedHours,omitempty"`
	StandardHours           float64 `json:"standardHours,omitempty"`
	ConcurrencyGraceMinutes int     `json:"concurrencyGraceMinutes,omitempty"`
	BreakDays               int     `json:"breakDays,omitempty"`
}

// EffectiveThresholds layers the overrides over the defaults.
func (s Settings) EffectiveThresholds() story.Thresholds {
	th := story.DefaultThresholds()
	o := s.Thresholds
	if o == nil {
		return th
	}
	if o.RapidPace > 0 {
		th.RapidPace = o.RapidPace
	}
	if o.SteadyPace > 0 {
		th.SteadyPace = o.SteadyPace
	}
	if o.DeliberatePace > 0 {
		th.DeliberatePace = o.DeliberatePace
	}
	if o.HeavyDelegation > 0 {
		th.HeavyDelegation = o.HeavyDelegation
	}
	if o.BalancedDelegation > 0 {
		th.BalancedDelegation = o.BalancedDelegation
	}
	if o.MarathonHours > 0 {
		th.MarathonHours = o.MarathonHours
	}
	if o.ExtendedHours > 0 {
		th.ExtendedHours = o.ExtendedHours
	}
	if o.StandardHours > 0 {
		th.StandardHours = o.StandardHours
	}
	if o.ConcurrencyGraceMinutes > 0 {
		th.ConcurrencyGrace = time.Duration(o.ConcurrencyGraceMinutes) * time.Minute
	}
	if o.BreakDays > 0 {
		th.BreakDays = o.BreakDays
	}
	return th
}

// DefaultPath is the settings file under the OS user config dir.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "claude-recap", "config.json"), nil
}
