package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	GrpcHost   string            `yaml:"grpc_host"`
	GrpcPort   int               `yaml:"grpc_port"`
	Storage    MStorageConfig    `yaml:"storage"`
	Network    MNetworkConfig    `yaml:"network"`
	DataSource MDataSourceConfig `yaml:"data_source"`
	Poller     MPollerConfig     `yaml:"poller"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // sqlite, postgres or redis
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RedisAddr          string `yaml:"redis_addr"`
	RedisPassword      string `yaml:"redis_password"`
	RedisDB            int    `yaml:"redis_db"`
	Key                string `yaml:"key"` // key holding the serialized watch-list
}

type MNetworkConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	MaxRetries     int      `yaml:"retries"`
	UserAgent      string   `yaml:"user_agent"`
}

type MDataSourceConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

type MPollerConfig struct {
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	FlashDurationMs     int    `yaml:"flash_duration_ms"`
	ConcurrentRequests  int    `yaml:"concurrent_requests"`
	GatewayURL          string `yaml:"gateway_url"` // used by the terminal watcher
}
