package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	TMS       TMSConfig       `mapstructure:"tms"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Docker    DockerConfig    `mapstructure:"docker"`
	Flow      FlowConfig      `mapstructure:"flow"`
	History   HistoryConfig   `mapstructure:"history"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	Rules     RulesConfig     `mapstructure:"rules"`
}

type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	MockPort    int      `mapstructure:"mock_port"`
	MetricsPort int      `mapstructure:"metrics_port"`
	SwaggerURL  string   `mapstructure:"swagger_url"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type TMSConfig struct {
	BaseURL        string               `mapstructure:"base_url"`
	TenantID       string               `mapstructure:"tenant_id"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	HealthTimeout  time.Duration        `mapstructure:"health_timeout"`
	Container      string               `mapstructure:"container"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type DatabaseConfig struct {
	UseLocal     bool          `mapstructure:"use_local"`
	Strategy     string        `mapstructure:"strategy"`
	Container    string        `mapstructure:"container"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	DBName       string        `mapstructure:"name"`
	SSLMode      string        `mapstructure:"sslmode"`
	Table        string        `mapstructure:"table"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

type DockerConfig struct {
	Binary          string            `mapstructure:"binary"`
	PsqlBinary      string            `mapstructure:"psql_binary"`
	ContainerPrefix string            `mapstructure:"container_prefix"`
	RuleContainers  map[string]string `mapstructure:"rule_containers"`
}

type FlowConfig struct {
	StepDelay  time.Duration `mapstructure:"step_delay"`
	AlertDelay time.Duration `mapstructure:"alert_delay"`
}

type HistoryConfig struct {
	Backend string `mapstructure:"backend"`
	Key     string `mapstructure:"key"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Topic   string `mapstructure:"topic"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type WebSocketConfig struct {
	MaxConnections int           `mapstructure:"max_connections"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	TailLines      int           `mapstructure:"tail_lines"`
}

type RulesConfig struct {
	HighValueThreshold   float64       `mapstructure:"high_value_threshold"`
	VelocityThreshold    int           `mapstructure:"velocity_threshold"`
	StructuringWindow    time.Duration `mapstructure:"structuring_window"`
	StructuringMinTx     int           `mapstructure:"structuring_min_tx"`
	StructuringSimilar   float64       `mapstructure:"structuring_similarity"`
	OutlierMultiplier    float64       `mapstructure:"outlier_multiplier"`
	VelocityBatchSize    int           `mapstructure:"velocity_batch_size"`
	HighValueBatchSize   int           `mapstructure:"high_value_batch_size"`
	StructuringBatchSize int           `mapstructure:"structuring_batch_size"`
}

const (
	DockerTMSURL = "http://localhost:5001"
	LocalTMSURL  = "http://localhost:3001"
)

var globalConfig Config

func Load(configPath string) error {
	v := viper.New()
	setDefaults(v)
	if err := loadConfigFile(v, configPath, "config", &globalConfig); err != nil {
		return err
	}
	setDefaultValues(&globalConfig)
	return nil
}

// LoadFrom builds a Config without touching the global one.
func LoadFrom(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := loadConfigFile(v, configPath, "config", &cfg); err != nil {
		return nil, err
	}
	setDefaultValues(&cfg)
	return &cfg, nil
}

func loadConfigFile(v *viper.Viper, configPath, fileName string, out interface{}) error {
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}
	return nil
}

// bindLegacyEnv keeps the variable names used by existing docker-compose files working.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("tms.base_url", "TMS_BASE_URL")
	_ = v.BindEnv("tms.tenant_id", "TMS_TENANT_ID", "SOURCE_TENANT_ID")
	_ = v.BindEnv("database.use_local", "DATABASE_USE_LOCAL", "USE_LOCAL_POSTGRES")
	_ = v.BindEnv("server.host", "SERVER_HOST")
	_ = v.BindEnv("server.port", "SERVER_PORT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mock_port", 5001)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.swagger_url", "/swagger.json")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("tms.tenant_id", "DEFAULT")
	v.SetDefault("tms.timeout", 10*time.Second)
	v.SetDefault("tms.health_timeout", 5*time.Second)
	v.SetDefault("tms.container", "tazama-tms")
	v.SetDefault("tms.circuit_breaker.enabled", false)
	v.SetDefault("tms.circuit_breaker.max_failures", 5)
	v.SetDefault("tms.circuit_breaker.timeout", 30*time.Second)

	v.SetDefault("database.use_local", false)
	v.SetDefault("database.container", "tazama-postgres-1")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5430)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "event_history")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.table", "transaction")
	v.SetDefault("database.query_timeout", 10*time.Second)

	v.SetDefault("docker.binary", "docker")
	v.SetDefault("docker.psql_binary", "psql")
	v.SetDefault("docker.container_prefix", "tazama-")
	v.SetDefault("docker.rule_containers", map[string]string{
		"901": "tazama-rule-901-1",
		"902": "tazama-rule-902-1",
		"006": "tazama-rule-006-1",
		"018": "tazama-rule-018-1",
	})

	v.SetDefault("flow.step_delay", 300*time.Millisecond)
	v.SetDefault("flow.alert_delay", 500*time.Millisecond)

	v.SetDefault("history.backend", "memory")
	v.SetDefault("history.key", "tms_harness:history")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic", "tms-test-records")

	v.SetDefault("metrics.enabled", false)

	v.SetDefault("websocket.max_connections", 32)
	v.SetDefault("websocket.ping_period", 30*time.Second)
	v.SetDefault("websocket.pong_wait", 45*time.Second)
	v.SetDefault("websocket.tail_lines", 20)

	v.SetDefault("rules.high_value_threshold", 15000000)
	v.SetDefault("rules.structuring_window", 24*time.Hour)
	v.SetDefault("rules.velocity_threshold", 3)
	v.SetDefault("rules.structuring_min_tx", 5)
	v.SetDefault("rules.structuring_similarity", 0.8)
	v.SetDefault("rules.outlier_multiplier", 1.5)
	v.SetDefault("rules.velocity_batch_size", 8)
	v.SetDefault("rules.high_value_batch_size", 6)
	v.SetDefault("rules.structuring_batch_size", 8)
}

func setDefaultValues(cfg *Config) {
	if cfg.TMS.BaseURL == "" {
		if cfg.Database.UseLocal {
			cfg.TMS.BaseURL = LocalTMSURL
		} else {
			cfg.TMS.BaseURL = DockerTMSURL
		}
	}
	cfg.TMS.BaseURL = strings.TrimRight(cfg.TMS.BaseURL, "/")
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Strategy == "" {
		if cfg.Database.UseLocal {
			cfg.Database.Strategy = "local"
		} else {
			cfg.Database.Strategy = "docker"
		}
	}
}

func GetConfig() *Config {
	return &globalConfig
}

// RuleContainer returns the container hosting the given rule processor, e.g. "901".
func (c *Config) RuleContainer(rule string) string {
	if name, ok := c.Docker.RuleContainers[rule]; ok {
		return name
	}
	return fmt.Sprintf("%srule-%s-1", c.Docker.ContainerPrefix, rule)
}

// RuleContainerNames returns every configured rule container in rule order.
func (c *Config) RuleContainerNames() []string {
	order := []string{"901", "902", "006", "018"}
	names := make([]string, 0, len(c.Docker.RuleContainers))
	seen := make(map[string]struct{}, len(order))
	for _, rule := range order {
		if name, ok := c.Docker.RuleContainers[rule]; ok {
			names = append(names, name)
			seen[rule] = struct{}{}
		}
	}
	extra := make([]string, 0)
	for rule := range c.Docker.RuleContainers {
		if _, ok := seen[rule]; !ok {
			extra = append(extra, rule)
		}
	}
	sort.Strings(extra)
	for _, rule := range extra {
		names = append(names, c.Docker.RuleContainers[rule])
	}
	return names
}
