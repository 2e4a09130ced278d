package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// SchedulerConfig carries the fixed daily fire times for the batch jobs,
// in "HH:MM" local time. Reaping runs before notification on purpose so a
// plan finished yesterday is gone before today's notification pass.
type SchedulerConfig struct {
	ReapAt   string `yaml:"reapAt" validate:"required"`
	NotifyAt string `yaml:"notifyAt" validate:"required"`
}

type EngagementConfig struct {
	// InactiveAfterDays is the last-login gap at which the inactivity
	// notification starts firing.
	InactiveAfterDays int `yaml:"inactiveAfterDays"`
}

type MailerConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	From        string `yaml:"from"`
	TemplateDir string `yaml:"templateDir"`
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
	WebServer   Server           `yaml:"webServer"`
	Persistence Persistence      `yaml:"persistence"`
	Scheduler   SchedulerConfig  `yaml:"scheduler"`
	Engagement  EngagementConfig `yaml:"engagement"`
	Mailer      MailerConfig     `yaml:"mailer"`
	Logger      LoggerConfig     `yaml:"logger"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}
