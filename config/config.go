package config

import (
	"os"

	postgres_wrapper "github.com/marketgrid/depthbook/pkg/infra/postgres"
	redis_wrapper "github.com/marketgrid/depthbook/pkg/infra/redis"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	DepthTopic string   `yaml:"depth_topic"`
	EventTopic string   `yaml:"event_topic"`
	GroupID    string   `yaml:"group_id"`
}

type FixConfig struct {
	ConfigFilepath string `yaml:"config_filepath"`
}

type AppConfig struct {
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`

	JournalDB *postgres_wrapper.Config `yaml:"journal_db"`
	Redis     *redis_wrapper.Config    `yaml:"redis"`
	Kafka     *KafkaConfig             `yaml:"kafka"`
	Fix       *FixConfig               `yaml:"fix"`

	// DepthLevels bounds published snapshots, 0 = full book.
	DepthLevels     int `yaml:"depth_levels"`
	DepthTTLSeconds int `yaml:"depth_ttl_seconds"`
}

// Load reads config from file and expands environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("filePath", filePath)
	sugar.Debug("load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		sugar.Error("failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
