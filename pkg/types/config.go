package types

// EngineConfig holds engine-level tuning.
type EngineConfig struct {
	// HistoryWindow is how many recent readings to fetch per prediction.
	HistoryWindow int `yaml:"historyWindow,omitempty" json:"historyWindow,omitempty"`
}

// AlertConfig defines an alert sink configuration.
type AlertConfig struct {
	Type AlertType `yaml:"type" json:"type"`
	URL  string    `yaml:"url,omitempty" json:"url,omitempty"`
	Path string    `yaml:"path,omitempty" json:"path,omitempty"`
}

// RedisConfig holds Redis/Valkey connection settings.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	KeyPrefix string `yaml:"keyPrefix,omitempty"`
}

// DynamoDBConfig holds DynamoDB connection and table settings.
type DynamoDBConfig struct {
	TableName   string `yaml:"tableName" json:"tableName"`
	Region      string `yaml:"region" json:"region"`
	Endpoint    string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	CreateTable bool   `yaml:"createTable,omitempty" json:"createTable,omitempty"`
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate,omitempty"`
}

// MetricsConfig configures the optional OTLP metrics exporter.
type MetricsConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"` // host:port of an OTLP gRPC collector
	Insecure bool   `yaml:"insecure,omitempty"`
}

// ProjectConfig represents the top-level plantpulse.yaml configuration.
type ProjectConfig struct {
	Provider string          `yaml:"provider"` // memory, redis, dynamodb, postgres
	Redis    *RedisConfig    `yaml:"redis,omitempty"`
	DynamoDB *DynamoDBConfig `yaml:"dynamodb,omitempty"`
	Postgres *PostgresConfig `yaml:"postgres,omitempty"`
	Engine   *EngineConfig   `yaml:"engine,omitempty"`
	Metrics  *MetricsConfig  `yaml:"metrics,omitempty"`
	Alerts   []AlertConfig   `yaml:"alerts,omitempty"`
}
