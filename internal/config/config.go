package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/keagan/overcut/internal/overlays"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Core settings
	WorkDir     string `yaml:"work_dir"`
	TempDir     string `yaml:"temp_dir"`
	Concurrency int    `yaml:"concurrency"`

	// EncodeSessions caps concurrent encoder invocations. Hardware
	// encoders expose a small fixed number of sessions; oversubscribing
	// them fails inside the tool rather than in-process.
	EncodeSessions int `yaml:"encode_sessions"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`

	// Encode settings
	Encode EncodeConfig `yaml:"encode"`

	// Overlay defaults
	Overlay OverlayConfig `yaml:"overlay"`
}

type FFmpegConfig struct {
	BinaryPath     string `yaml:"binary_path"`
	ProbePath      string `yaml:"probe_path"`
	Threads        int    `yaml:"threads"`
	TimeoutMinutes int    `yaml:"timeout_minutes"`
}

type EncodeConfig struct {
	UseGPU        bool                       `yaml:"use_gpu"`
	DefaultPreset string                     `yaml:"default_preset"`
	AudioBitrate  string                     `yaml:"audio_bitrate"`
	Presets       map[string]overlays.Preset `yaml:"presets"`
}

type OverlayConfig struct {
	Position    string  `yaml:"position"`
	SizePercent float64 `yaml:"size_percent"`
	ChromaColor string  `yaml:"chroma_color"`
	Similarity  float64 `yaml:"similarity"`
	Blend       float64 `yaml:"blend"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		WorkDir:        "./work",
		TempDir:        "./temp",
		Concurrency:    2,
		EncodeSessions: 1,
		FFmpeg: FFmpegConfig{
			BinaryPath:     "ffmpeg",
			ProbePath:      "ffprobe",
			Threads:        0,
			TimeoutMinutes: 60,
		},
		Encode: EncodeConfig{
			UseGPU:        false,
			DefaultPreset: "fast",
			AudioBitrate:  "192k",
			Presets:       overlays.DefaultPresets(),
		},
		Overlay: OverlayConfig{
			Position:    "top-right",
			SizePercent: 20,
			ChromaColor: "0x00FF00",
			Similarity:  0.3,
			Blend:       0.1,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".overcut", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
