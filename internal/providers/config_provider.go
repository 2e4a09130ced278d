package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"mindd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "MINDD_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "MINDD_SAVE_INTERVAL")
	viper.BindEnv("scheduler.reapAt", "MINDD_REAP_AT")
	viper.BindEnv("scheduler.notifyAt", "MINDD_NOTIFY_AT")
	viper.BindEnv("cache.enabled", "MINDD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "MINDD_CACHE_SIZE")
	viper.BindEnv("mailer.host", "MINDD_SMTP_HOST")
	viper.BindEnv("mailer.port", "MINDD_SMTP_PORT")
	viper.BindEnv("mailer.username", "MINDD_SMTP_USERNAME")
	viper.BindEnv("mailer.password", "MINDD_SMTP_PASSWORD")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if conf.Engagement.InactiveAfterDays <= 0 {
		conf.Engagement.InactiveAfterDays = 7
	}

	conf.AppName = "MindEngagementDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
