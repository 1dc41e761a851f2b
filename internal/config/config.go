package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"raymode7/internal/mathutil"
)

// Config holds all renderer and viewer configuration values
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Render     RenderConfig     `yaml:"render"`
	Camera     CameraConfig     `yaml:"camera"`
	Movement   MovementConfig   `yaml:"movement"`
	World      WorldConfig      `yaml:"world"`
	Threading  ThreadingConfig  `yaml:"threading"`
	Capture    CaptureConfig    `yaml:"capture"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

// RenderConfig sets the internal frame buffer size, which is scaled up to the
// window. Zero width or height renders at screen size.
type RenderConfig struct {
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Shading ShadingConfig `yaml:"shading"`
	Colors  ColorConfig   `yaml:"colors"`
}

type ShadingConfig struct {
	Curve         string  `yaml:"curve"`
	BrightnessMin float64 `yaml:"brightness_min"`
	SideFactor    float64 `yaml:"side_factor"`
}

// ColorConfig holds RGB triples for untextured surfaces.
type ColorConfig struct {
	Sky     [3]int `yaml:"sky"`
	Floor   [3]int `yaml:"floor"`
	Ceiling [3]int `yaml:"ceiling"`
	Fog     [3]int `yaml:"fog"`
	Missing [3]int `yaml:"missing"`
}

type CameraConfig struct {
	FieldOfView  float64 `yaml:"field_of_view"` // degrees
	ViewDistance float64 `yaml:"view_distance"` // grid units
	HeightOffset float64 `yaml:"height_offset"`
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	HeightSpeed   float64 `yaml:"height_speed"`
	FOVStep       float64 `yaml:"fov_step"` // degrees
}

type WorldConfig struct {
	TilesFile   string `yaml:"tiles_file"`
	MapFile     string `yaml:"map_file"`
	TextureDir  string `yaml:"texture_dir"`
	TextureSize int    `yaml:"texture_size"`
}

type ThreadingConfig struct {
	Enabled bool `yaml:"enabled"`
	Workers int  `yaml:"workers"` // 0 = one per CPU
}

type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

type MonitoringConfig struct {
	LogIntervalSeconds float64 `yaml:"log_interval_seconds"`
	MinFPS             float64 `yaml:"min_fps"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates and decodes YAML configuration, filling unset values with
// defaults.
func Parse(data []byte) (*Config, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

// MustLoadConfig loads config and panics on error (for initialization)
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Default returns the built-in configuration.
func Default() *Config {
	var config Config
	config.applyDefaults()
	return &config
}

func (c *Config) applyDefaults() {
	setInt(&c.Display.ScreenWidth, 960)
	setInt(&c.Display.ScreenHeight, 600)
	if c.Display.WindowTitle == "" {
		c.Display.WindowTitle = "raymode7"
	}

	if c.Render.Shading.Curve == "" {
		c.Render.Shading.Curve = "linear"
	}
	setFloat(&c.Render.Shading.BrightnessMin, 0.2)
	setFloat(&c.Render.Shading.SideFactor, 0.7)

	setFloat(&c.Camera.FieldOfView, 60)
	setFloat(&c.Camera.ViewDistance, 32)

	setFloat(&c.Movement.MoveSpeed, 3)
	setFloat(&c.Movement.RotationSpeed, 2)
	setFloat(&c.Movement.HeightSpeed, 0.5)
	setFloat(&c.Movement.FOVStep, 5)

	if c.World.TilesFile == "" {
		c.World.TilesFile = "assets/tiles.yaml"
	}
	if c.World.MapFile == "" {
		c.World.MapFile = "assets/maps/courtyard.map"
	}
	if c.World.TextureDir == "" {
		c.World.TextureDir = "assets/textures"
	}
	setInt(&c.World.TextureSize, 64)

	if c.Capture.Dir == "" {
		c.Capture.Dir = "captures"
	}
	if c.Capture.Format == "" {
		c.Capture.Format = "webp"
	}
	setFloat(&c.Monitoring.LogIntervalSeconds, 5)
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

// Getter methods for commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetRenderWidth returns the frame buffer width.
func (c *Config) GetRenderWidth() int {
	if c.Render.Width > 0 {
		return c.Render.Width
	}
	return c.Display.ScreenWidth
}

// GetRenderHeight returns the frame buffer height.
func (c *Config) GetRenderHeight() int {
	if c.Render.Height > 0 {
		return c.Render.Height
	}
	return c.Display.ScreenHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetCameraFOV returns the field of view in radians.
func (c *Config) GetCameraFOV() float64 {
	return mathutil.DegToRad(c.Camera.FieldOfView)
}

// GetFOVStep returns the field of view change per key press in radians.
func (c *Config) GetFOVStep() float64 {
	return mathutil.DegToRad(c.Movement.FOVStep)
}

func (c *Config) GetViewDistance() float64 {
	return c.Camera.ViewDistance
}

// Convenience function for getting PI/3 (60 degrees) FOV
func (c *Config) GetDefaultFOV() float64 {
	return math.Pi / 3
}

// GetWorkers returns the worker count, 0 when threading is disabled.
func (c *Config) GetWorkers() int {
	if !c.Threading.Enabled {
		return 0
	}
	return c.Threading.Workers
}
