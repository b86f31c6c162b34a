package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Backend      string        `yaml:"backend" validate:"required|in:badger,file,memory"`
	Path         string        `yaml:"path"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// TrackingConfig drives the session controller timings.
type TrackingConfig struct {
	TickInterval      time.Duration `yaml:"tickInterval" validate:"required|min:1"`
	MaxDetectAttempts int           `yaml:"maxDetectAttempts" validate:"required|min:1"`
	DetectRetryDelay  time.Duration `yaml:"detectRetryDelay" validate:"required|min:1"`
	SignalTimeout     time.Duration `yaml:"signalTimeout" validate:"required|min:1"`
}

type YouTubeConfig struct {
	Enabled           bool    `yaml:"enabled"`
	ApiKey            string  `yaml:"apiKey"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Tracking    TrackingConfig `yaml:"tracking"`
	YouTube     YouTubeConfig  `yaml:"youtube"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
