// Package calibration measures the multiplication crossovers of the bigint
// kernel on the current machine and persists them in a profile that later
// runs load instead of the adaptive estimates.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/agbru/bigcalc/internal/config"
)

// CalibrationProfile stores the results of a calibration run together with
// the hardware context needed to decide whether they still apply.
type CalibrationProfile struct {
	// Hardware identification
	CPUModel    string      `json:"cpu_model"`
	CPUFeatures CPUFeatures `json:"cpu_features"`
	NumCPU      int         `json:"num_cpu"`
	GOARCH      string      `json:"goarch"`
	GOOS        string      `json:"goos"`
	GoVersion   string      `json:"go_version"`
	WordSize    int         `json:"word_size"` // 32 or 64

	// Calibrated crossovers, in digits
	KaratsubaThreshold int `json:"karatsuba_threshold"`
	ToomThreshold      int `json:"toom_threshold"`

	// Calibration metadata
	CalibratedAt    time.Time `json:"calibrated_at"`
	CalibrationTime string    `json:"calibration_time"`

	// Version for forward compatibility
	ProfileVersion int `json:"profile_version"`
}

const (
	// CurrentProfileVersion is the current version of the profile format.
	CurrentProfileVersion = 1

	// DefaultProfileFileName is the default name for the calibration profile file.
	DefaultProfileFileName = ".bigcalc_calibration.json"

	// MaxProfileAge is the age after which a profile is ignored.
	MaxProfileAge = 30 * 24 * time.Hour
)

// GetDefaultProfilePath returns the default path for the calibration profile.
// It uses the user's home directory if available, otherwise the current directory.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// NewProfile creates a new CalibrationProfile with current hardware info.
func NewProfile() *CalibrationProfile {
	features := DetectCPUFeatures()
	return &CalibrationProfile{
		CPUModel:       getCPUModel(features),
		CPUFeatures:    features,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       strconv.IntSize,
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// getCPUModel builds a CPU identifier from the architecture, the core count
// and the detected features.
func getCPUModel(features CPUFeatures) string {
	return fmt.Sprintf("%s-%d-cores-%s", runtime.GOARCH, runtime.NumCPU(), features)
}

// LoadProfile loads a calibration profile from the specified path.
// Returns nil and an error if the file doesn't exist or can't be parsed.
func LoadProfile(path string) (*CalibrationProfile, error) {
	if path == "" {
		path = GetDefaultProfilePath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile CalibrationProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile saves the calibration profile to the specified path.
// If path is empty, uses the default profile path.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if path == "" {
		path = GetDefaultProfilePath()
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// IsValid checks if the profile is valid for the current hardware: same
// format version, CPU count, architecture, word size and CPU features.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	switch {
	case p.ProfileVersion != CurrentProfileVersion,
		p.NumCPU != runtime.NumCPU(),
		p.GOARCH != runtime.GOARCH,
		p.WordSize != strconv.IntSize,
		p.CPUFeatures != DetectCPUFeatures():
		return false
	}
	return p.KaratsubaThreshold > 0 && p.ToomThreshold >= p.KaratsubaThreshold
}

// IsStale checks if the profile is older than the given duration.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String returns a human-readable summary of the profile.
func (p *CalibrationProfile) String() string {
	if p == nil {
		return "<nil profile>"
	}
	return fmt.Sprintf(
		"CalibrationProfile{CPU: %s, Karatsuba: %d digits, Toom-3: %d digits, Calibrated: %s}",
		p.CPUModel,
		p.KaratsubaThreshold,
		p.ToomThreshold,
		p.CalibratedAt.Format(time.RFC3339),
	)
}

// Apply fills the multiplication thresholds that cfg leaves at zero with
// the calibrated values.
func (p *CalibrationProfile) Apply(cfg config.AppConfig) config.AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = p.KaratsubaThreshold
	}
	if cfg.ToomThreshold == 0 {
		cfg.ToomThreshold = p.ToomThreshold
	}
	return cfg
}

// LoadOrCreateProfile loads an existing profile or creates a new one if not
// found. If the existing profile is invalid for the current hardware,
// returns a new profile.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	profile, err := LoadProfile(path)
	if err != nil || !profile.IsValid() {
		return NewProfile(), false
	}
	return profile, true
}

// LoadCachedThresholds applies a valid, fresh profile from
// cfg.CalibrationProfile (or the default path) to cfg. The boolean reports
// whether a profile was used.
func LoadCachedThresholds(cfg config.AppConfig) (config.AppConfig, bool) {
	profile, err := LoadProfile(cfg.CalibrationProfile)
	if err != nil || !profile.IsValid() || profile.IsStale(MaxProfileAge) {
		return cfg, false
	}
	return profile.Apply(cfg), true
}

// ProfileExists checks if a calibration profile exists at the given path.
func ProfileExists(path string) bool {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	_, err := os.Stat(path)
	return err == nil
}
