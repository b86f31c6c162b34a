package providers

import (
	"fmt"
	"langtrack/internal/structures"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8787)
	v.SetDefault("persistence.backend", "badger")
	v.SetDefault("persistence.saveInterval", 30*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("tracking.tickInterval", 5*time.Second)
	v.SetDefault("tracking.maxDetectAttempts", 5)
	v.SetDefault("tracking.detectRetryDelay", 1500*time.Millisecond)
	v.SetDefault("tracking.signalTimeout", 300*time.Millisecond)
	v.SetDefault("youtube.requestsPerSecond", 2.0)
	v.SetDefault("cache.ttl", 10*time.Second)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	v.BindEnv("logger.level", "LANGTRACK_LOG_LEVEL")
	v.BindEnv("webServer.port", "LANGTRACK_PORT")
	v.BindEnv("persistence.backend", "LANGTRACK_STORE")
	v.BindEnv("persistence.path", "LANGTRACK_STORE_PATH")
	v.BindEnv("youtube.apiKey", "LANGTRACK_YOUTUBE_API_KEY")
	v.BindEnv("cache.enabled", "LANGTRACK_CACHE_ENABLED")
	v.BindEnv("cache.size", "LANGTRACK_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "LanguageWatchTracker"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
