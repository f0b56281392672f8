// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package recommend

import "fmt"

// Config contains the scoring rule constants. The defaults are the tuned
// production values; they are exposed through the application config so a
// deployment can rebalance the rules without a rebuild.
type Config struct {
	// FaceMatchBase is the base score for a style whose face shape list
	// contains the profile's face shape. This is the dominant term.
	FaceMatchBase float64 `json:"face_match_base" koanf:"face_match_base"`

	// FaceMissBase is the base score for a style that does not match the
	// profile's face shape. Mismatched styles stay in the results, just
	// ranked lower.
	FaceMissBase float64 `json:"face_miss_base" koanf:"face_miss_base"`

	// ServiceBoostStep is added once per prior booking of the style's
	// service, up to ServiceBoostCap.
	ServiceBoostStep float64 `json:"service_boost_step" koanf:"service_boost_step"`

	// ServiceBoostCap caps the popularity boost. With the default step of
	// 0.08 the cap is reached at three prior bookings.
	ServiceBoostCap float64 `json:"service_boost_cap" koanf:"service_boost_cap"`

	// RecencyBonus is added when the most recent history entry matches the
	// style's service.
	RecencyBonus float64 `json:"recency_bonus" koanf:"recency_bonus"`

	// PrefStep is multiplied by the clamped preference weight for each
	// keyword tag that matches the style.
	PrefStep float64 `json:"pref_step" koanf:"pref_step"`

	// PrefWeightMin and PrefWeightMax bound a preference weight before it
	// is applied.
	PrefWeightMin int `json:"pref_weight_min" koanf:"pref_weight_min"`
	PrefWeightMax int `json:"pref_weight_max" koanf:"pref_weight_max"`

	// MaxScore is the ceiling applied to the final score. There is
	// deliberately no floor; see ScoreStyles.
	MaxScore float64 `json:"max_score" koanf:"max_score"`
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() *Config {
	return &Config{
		FaceMatchBase:    0.6,
		FaceMissBase:     0.2,
		ServiceBoostStep: 0.08,
		ServiceBoostCap:  0.24,
		RecencyBonus:     0.08,
		PrefStep:         0.06,
		PrefWeightMin:    -2,
		PrefWeightMax:    3,
		MaxScore:         1.0,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.FaceMatchBase < 0 || c.FaceMatchBase > c.MaxScore {
		return fmt.Errorf("face_match_base %v outside [0, %v]", c.FaceMatchBase, c.MaxScore)
	}
	if c.FaceMissBase < 0 || c.FaceMissBase > c.FaceMatchBase {
		return fmt.Errorf("face_miss_base %v outside [0, %v]", c.FaceMissBase, c.FaceMatchBase)
	}
	if c.ServiceBoostStep < 0 {
		return fmt.Errorf("service_boost_step must be non-negative, got %v", c.ServiceBoostStep)
	}
	if c.ServiceBoostCap < 0 {
		return fmt.Errorf("service_boost_cap must be non-negative, got %v", c.ServiceBoostCap)
	}
	if c.RecencyBonus < 0 {
		return fmt.Errorf("recency_bonus must be non-negative, got %v", c.RecencyBonus)
	}
	if c.PrefStep < 0 {
		return fmt.Errorf("pref_step must be non-negative, got %v", c.PrefStep)
	}
	if c.PrefWeightMin > c.PrefWeightMax {
		return fmt.Errorf("pref_weight_min %d greater than pref_weight_max %d", c.PrefWeightMin, c.PrefWeightMax)
	}
	if c.MaxScore <= 0 {
		return fmt.Errorf("max_score must be positive, got %v", c.MaxScore)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// clampWeight bounds a preference weight to the configured range.
func (c *Config) clampWeight(w int) int {
	if w < c.PrefWeightMin {
		return c.PrefWeightMin
	}
	if w > c.PrefWeightMax {
		return c.PrefWeightMax
	}
	return w
}
