package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type UploadConfig struct {
	Dir       string `mapstructure:"dir"`
	MaxSizeMB int64  `mapstructure:"max_size_mb"`
}

type AIConfig struct {
	GeminiAPIKey   string `mapstructure:"gemini_api_key"`
	GeminiModel    string `mapstructure:"gemini_model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	FFmpegPath     string `mapstructure:"ffmpeg_path"`
	WhisperPath    string `mapstructure:"whisper_path"`
	WhisperModel   string `mapstructure:"whisper_model"`
}

type SessionConfig struct {
	PublicOrgID         string `mapstructure:"public_org_id"`
	RandomQuestionCount int    `mapstructure:"random_question_count"`
	RandomExpireHours   int    `mapstructure:"random_expire_hours"`
	TemplateExpireHours int    `mapstructure:"template_expire_hours"`
}

type SeedConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Upload   UploadConfig   `mapstructure:"upload"`
	AI       AIConfig       `mapstructure:"ai"`
	Session  SessionConfig  `mapstructure:"session"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Log      LogConfig      `mapstructure:"log"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("upload.dir", "uploads/videos")
		v.SetDefault("upload.max_size_mb", 50)
		v.SetDefault("ai.gemini_model", "gemini-2.5-flash")
		v.SetDefault("ai.timeout_seconds", 120)
		v.SetDefault("ai.whisper_model", "small")
		v.SetDefault("session.random_question_count", 5)
		v.SetDefault("session.random_expire_hours", 24)
		v.SetDefault("session.template_expire_hours", 48)

		// environment overrides, e.g. AIB_SERVER_PORT=9000
		v.SetEnvPrefix("AIB") // ai interview backend
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
