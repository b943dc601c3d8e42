package openlime

import (
	"fmt"
	"os"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// CameraConfig holds the tunable camera limits.
type CameraConfig struct {
	MinScreenFraction float64 `yaml:"min_screen_fraction"`
	MaxFixedZoom      float64 `yaml:"max_fixed_zoom"`
	// Bounded defaults to true when omitted.
	Bounded *bool `yaml:"bounded"`
	// Easing names a gween curve, e.g. "linear" or "outCubic".
	Easing string `yaml:"easing"`
}

// ControllerConfig holds the pan/zoom controller timings.
type ControllerConfig struct {
	ZoomAmount   float64 `yaml:"zoom_amount"`
	ZoomDelay    float64 `yaml:"zoom_delay"`
	UpdateDelay  float64 `yaml:"update_delay"`
	TickInterval float64 `yaml:"tick_interval"`
}

// Config is the YAML document read by LoadConfig.
//
//	pointer:
//	  diagonal: 24
//	  hold_timeout: 500
//	camera:
//	  max_fixed_zoom: 4
//	  easing: outCubic
//	controller:
//	  zoom_amount: 1.5
type Config struct {
	Pointer    PointerConfig    `yaml:"pointer"`
	Camera     CameraConfig     `yaml:"camera"`
	Controller ControllerConfig `yaml:"controller"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	bounded := true
	return Config{
		Pointer: DefaultPointerConfig(),
		Camera: CameraConfig{
			MinScreenFraction: 1,
			MaxFixedZoom:      2,
			Bounded:           &bounded,
			Easing:            "linear",
		},
		Controller: ControllerConfig{
			ZoomAmount:   defaultZoomAmount,
			ZoomDelay:    defaultZoomDelay,
			UpdateDelay:  defaultUpdateDelay,
			TickInterval: defaultTickInterval,
		},
	}
}

// ParseConfig decodes a YAML document over the defaults, so omitted keys
// keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if _, err := easingByName(cfg.Camera.Easing); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// easings maps config names to gween curves. Linear is nil: the camera then
// interpolates in float64 without a curve.
var easings = map[string]ease.TweenFunc{
	"linear":     nil,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
	"inOutExpo":  ease.InOutExpo,
	"outBack":    ease.OutBack,
}

func easingByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return nil, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// Apply copies the non-zero settings onto c.
func (cc CameraConfig) Apply(c *Camera) error {
	if cc.MinScreenFraction > 0 {
		c.MinScreenFraction = cc.MinScreenFraction
	}
	if cc.MaxFixedZoom > 0 {
		c.MaxFixedZoom = cc.MaxFixedZoom
	}
	if cc.Bounded != nil {
		c.Bounded = *cc.Bounded
	}
	fn, err := easingByName(cc.Easing)
	if err != nil {
		return err
	}
	c.Easing = fn
	c.updateBounds()
	return nil
}

// Apply copies the settings onto pz. Negative delays and non-positive
// ZoomAmount or TickInterval are ignored.
func (cc ControllerConfig) Apply(pz *PanZoomController) {
	if cc.ZoomAmount > 0 {
		pz.ZoomAmount = cc.ZoomAmount
	}
	if cc.ZoomDelay >= 0 {
		pz.ZoomDelay = cc.ZoomDelay
	}
	if cc.UpdateDelay >= 0 {
		pz.UpdateDelay = cc.UpdateDelay
	}
	if cc.TickInterval > 0 {
		pz.TickInterval = cc.TickInterval
	}
}
