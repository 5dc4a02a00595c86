package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFontFamily = "Go Regular"
	DefaultFontSize   = 16
	// DefaultActivityContinue is how long an unpaused activity event stays up.
	DefaultActivityContinue = 10
)

// Position is a window location as percentages of the free screen space.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type Font struct {
	Family  string `yaml:"family"`
	Size    int    `yaml:"size"`
	Outline int    `yaml:"outline,omitempty"`
}

// Settings are the viewer options kept between runs.
type Settings struct {
	WindowGlass bool   `yaml:"window_glass"`
	Font        Font   `yaml:"font"`
	MonoFont    Font   `yaml:"mono_font"`
	SaveFile    string `yaml:"save_file"`
	Catalog     string `yaml:"catalog,omitempty"`

	// ActivityContinue is how many seconds events that do not pause the
	// activity stay up; 0 skips their popup.
	ActivityContinue int                 `yaml:"activity_continue"`
	WindowPositions  map[string]Position `yaml:"window_positions,omitempty"`

	path string
}

func Default() *Settings {
	return &Settings{
		Font:             Font{Family: DefaultFontFamily, Size: DefaultFontSize},
		MonoFont:         Font{Family: "Go Mono", Size: DefaultFontSize},
		SaveFile:         "railhud.sav",
		ActivityContinue: DefaultActivityContinue,
		WindowPositions:  map[string]Position{},
	}
}

// DefaultPath is the per-user settings file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "railhud", "settings.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults and
// Save will create it.
func Load(path string) (*Settings, error) {
	s := Default()
	s.path = path
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

func (s *Settings) normalize() {
	if s.Font.Family == "" {
		s.Font.Family = DefaultFontFamily
	}
	if s.Font.Size <= 0 {
		s.Font.Size = DefaultFontSize
	}
	if s.MonoFont.Family == "" {
		s.MonoFont.Family = "Go Mono"
	}
	if s.MonoFont.Size <= 0 {
		s.MonoFont.Size = s.Font.Size
	}
	if s.ActivityContinue < 0 {
		s.ActivityContinue = 0
	}
	if s.WindowPositions == nil {
		s.WindowPositions = map[string]Position{}
	}
}

func (s *Settings) Path() string { return s.path }

// Save writes the settings back to the file they were loaded from.
func (s *Settings) Save() error {
	if s.path == "" {
		return errors.New("settings: no file to save to")
	}
	return s.SaveTo(s.path)
}

func (s *Settings) SaveTo(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.path = path
	return nil
}

// WindowPosition returns the saved position of the named window.
func (s *Settings) WindowPosition(name string) (x, y int, ok bool) {
	p, ok := s.WindowPositions[name]
	if !ok {
		return 0, 0, false
	}
	return clampPercent(p.X), clampPercent(p.Y), true
}

func (s *Settings) SetWindowPosition(name string, x, y int) {
	if s.WindowPositions == nil {
		s.WindowPositions = map[string]Position{}
	}
	s.WindowPositions[name] = Position{X: clampPercent(x), Y: clampPercent(y)}
}

func clampPercent(v int) int { return max(0, min(v, 100)) }
