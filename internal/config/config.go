package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CHATSCREEN_CAMERA_DEVICE
const EnvPrefix = "CHATSCREEN"

// DefaultResponse is the canned system reply to every text message
const DefaultResponse = "This is an AI--generated response."

// Config holds the application configuration
type Config struct {
	// Audio Configuration
	SampleRate  int    `mapstructure:"sample_rate"`
	Channels    int    `mapstructure:"channels"`
	BufferSize  int    `mapstructure:"buffer_size"`
	InputDevice string `mapstructure:"input_device"`

	// Camera Configuration
	CameraDevice    string  `mapstructure:"camera_device"`
	FFmpegPath      string  `mapstructure:"ffmpeg_path"`
	PhotoQuality    float64 `mapstructure:"photo_quality"`
	IncludeMetadata bool    `mapstructure:"include_metadata"`

	// Application Settings
	MediaLibraryDir string `mapstructure:"media_library_dir"`
	AutoResponse    string `mapstructure:"auto_response"`
	Greeting        string `mapstructure:"greeting"`
	LogLevel        string `mapstructure:"log_level"`

	// File Paths
	ConfigDir    string `mapstructure:"config_dir"`
	LogFile      string `mapstructure:"log_file"`
	AudioTempDir string `mapstructure:"audio_temp_dir"`
	PhotoTempDir string `mapstructure:"photo_temp_dir"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", "chatscreen")
	tempDir := filepath.Join(os.TempDir(), "chatscreen")

	return &Config{
		SampleRate:  44100,
		Channels:    1,
		BufferSize:  1024,
		InputDevice: "default",

		CameraDevice:    "/dev/video0",
		FFmpegPath:      "ffmpeg",
		PhotoQuality:    1,
		IncludeMetadata: false,

		MediaLibraryDir: filepath.Join(homeDir, "Pictures", "chatscreen"),
		AutoResponse:    DefaultResponse,
		LogLevel:        "info",

		ConfigDir:    configDir,
		LogFile:      filepath.Join(configDir, "chatscreen.log"),
		AudioTempDir: filepath.Join(tempDir, "audio"),
		PhotoTempDir: filepath.Join(tempDir, "photos"),
	}
}

// Load reads the configuration. Values come from the defaults, then the
// YAML file at path (or config.yaml in the config dir when path is empty),
// then CHATSCREEN_* environment variables. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := newViper(DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(v.GetString("config_dir"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	for _, dir := range []string{config.ConfigDir, config.AudioTempDir, config.PhotoTempDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return config, nil
}

func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("sample_rate", defaults.SampleRate)
	v.SetDefault("channels", defaults.Channels)
	v.SetDefault("buffer_size", defaults.BufferSize)
	v.SetDefault("input_device", defaults.InputDevice)
	v.SetDefault("camera_device", defaults.CameraDevice)
	v.SetDefault("ffmpeg_path", defaults.FFmpegPath)
	v.SetDefault("photo_quality", defaults.PhotoQuality)
	v.SetDefault("include_metadata", defaults.IncludeMetadata)
	v.SetDefault("media_library_dir", defaults.MediaLibraryDir)
	v.SetDefault("auto_response", defaults.AutoResponse)
	v.SetDefault("greeting", defaults.Greeting)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("config_dir", defaults.ConfigDir)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("audio_temp_dir", defaults.AudioTempDir)
	v.SetDefault("photo_temp_dir", defaults.PhotoTempDir)
	return v
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive")
	}

	if c.Channels < 1 || c.Channels > 2 {
		return fmt.Errorf("channels must be 1 or 2")
	}

	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive")
	}

	if strings.TrimSpace(c.InputDevice) == "" {
		return fmt.Errorf("input device must not be empty")
	}

	if c.PhotoQuality < 0 || c.PhotoQuality > 1 {
		return fmt.Errorf("photo quality must be between 0 and 1")
	}

	if strings.TrimSpace(c.AutoResponse) == "" {
		return fmt.Errorf("auto response must not be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}
