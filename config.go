package worldview

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the tunable behavior of a viewport and its stock controllers.
// The zero value is not useful; start from DefaultConfig.
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Keys     KeyConfig      `toml:"keys"`
	Labels   LabelConfig    `toml:"labels"`
	Log      LogConfig      `toml:"log"`
}

// ViewportConfig configures camera defaults and frame pacing.
type ViewportConfig struct {
	Background    Color         `toml:"background"`
	DefaultScale  float64       `toml:"default_scale"`
	ResetDuration time.Duration `toml:"reset_duration"`
	PaintBudget   time.Duration `toml:"paint_budget"`
	ShowStatus    bool          `toml:"show_status"`
}

// KeyConfig configures CameraKeyController. PanSpeed is in screen pixels per
// second; ZoomSpeed is in zoom steps per second.
type KeyConfig struct {
	PanSpeed  float64           `toml:"pan_speed"`
	ZoomSpeed float64           `toml:"zoom_speed"`
	Bindings  KeyBindings       `toml:"bindings"`
	Aliases   map[string]string `toml:"aliases"`
}

// KeyBindings names the key that triggers each camera action.
type KeyBindings struct {
	Reset     string `toml:"reset"`
	MoveUp    string `toml:"move_up"`
	MoveDown  string `toml:"move_down"`
	MoveLeft  string `toml:"move_left"`
	MoveRight string `toml:"move_right"`
	ZoomIn    string `toml:"zoom_in"`
	ZoomOut   string `toml:"zoom_out"`
}

// LabelConfig configures label rendering.
type LabelConfig struct {
	Font            string  `toml:"font"`
	LineWidth       float64 `toml:"line_width"`
	ScaleMultiplier float64 `toml:"scale_multiplier"`
}

// Apply copies the settings onto s.
func (c LabelConfig) Apply(s *LabelSet) {
	if c.Font != "" {
		s.SetFont(c.Font)
	}
	if c.LineWidth > 0 {
		s.SetLineWidth(c.LineWidth)
	}
	s.SetScaleMultiplier(c.ScaleMultiplier)
}

// LogConfig configures the default logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// ParseLevel returns the configured level, defaulting to warn.
func (c LogConfig) ParseLevel() (log.Level, error) {
	if c.Level == "" {
		return log.WarnLevel, nil
	}
	return log.ParseLevel(c.Level)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Viewport: ViewportConfig{
			Background:    ColorBackground,
			DefaultScale:  DefaultCameraScale,
			ResetDuration: 0,
			PaintBudget:   defaultPaintBudget,
		},
		Keys: KeyConfig{
			PanSpeed:  1000,
			ZoomSpeed: 20,
			Bindings: KeyBindings{
				Reset:     "Escape",
				MoveUp:    "ArrowUp",
				MoveDown:  "ArrowDown",
				MoveLeft:  "ArrowLeft",
				MoveRight: "ArrowRight",
				ZoomIn:    "ZoomIn",
				ZoomOut:   "ZoomOut",
			},
			Aliases: map[string]string{
				"Equal":          "ZoomIn",
				"NumpadAdd":      "ZoomIn",
				"Minus":          "ZoomOut",
				"NumpadSubtract": "ZoomOut",
			},
		},
		Labels: LabelConfig{
			Font:            defaultLabelFont,
			LineWidth:       defaultLabelLineWidth,
			ScaleMultiplier: 1,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// ParseConfig decodes TOML over DefaultConfig. Keys absent from data keep
// their defaults; unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case !(c.Viewport.DefaultScale > 0):
		return fmt.Errorf("config: viewport.default_scale must be positive, got %g", c.Viewport.DefaultScale)
	case c.Viewport.ResetDuration < 0:
		return fmt.Errorf("config: viewport.reset_duration must not be negative, got %s", c.Viewport.ResetDuration)
	case c.Viewport.PaintBudget < 0:
		return fmt.Errorf("config: viewport.paint_budget must not be negative, got %s", c.Viewport.PaintBudget)
	case c.Keys.PanSpeed < 0:
		return fmt.Errorf("config: keys.pan_speed must not be negative, got %g", c.Keys.PanSpeed)
	case c.Keys.ZoomSpeed < 0:
		return fmt.Errorf("config: keys.zoom_speed must not be negative, got %g", c.Keys.ZoomSpeed)
	case c.Labels.LineWidth < 0:
		return fmt.Errorf("config: labels.line_width must not be negative, got %g", c.Labels.LineWidth)
	case c.Labels.ScaleMultiplier < 0:
		return fmt.Errorf("config: labels.scale_multiplier must not be negative, got %g", c.Labels.ScaleMultiplier)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// --- Color text encoding ---

// MarshalText encodes the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) MarshalText() ([]byte, error) {
	b := func(v float64) int {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return int(v*255 + 0.5)
	}
	if c.A >= 1 {
		return []byte(fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))), nil
	}
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))), nil
}

// UnmarshalText decodes "#rgb", "#rrggbb" or "#rrggbbaa".
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHexColor parses a CSS-style hex color.
func ParseHexColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return Color{}, fmt.Errorf("color %q: missing '#'", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
