// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Store       StoreConfig       `mapstructure:"store"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StoreConfig selects and configures the catalog store backend.
type StoreConfig struct {
	// Backend is "neo4j" or "postgres".
	Backend  string         `mapstructure:"backend"`
	Neo4j    Neo4jConfig    `mapstructure:"neo4j"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// Neo4jConfig carries the bolt URI and an ordered list of credentials tried
// in sequence at startup until one succeeds.
type Neo4jConfig struct {
	URI         string            `mapstructure:"uri"`
	Credentials []Neo4jCredential `mapstructure:"credentials"`
}

type Neo4jCredential struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RecommenderConfig holds the tunables of the recommendation pipeline.
type RecommenderConfig struct {
	// DefaultLimit is the result list size when the request carries none.
	DefaultLimit int `mapstructure:"default_limit"`
	// MaxLimit caps the requested result list size.
	MaxLimit int `mapstructure:"max_limit"`
	// CandidateMultiplier sizes the broad candidate fetch relative to the
	// final limit.
	CandidateMultiplier int `mapstructure:"candidate_multiplier"`
	// MinFilterConditions is the minimum number of non-empty filter
	// conditions required before an exact-filter query is issued.
	MinFilterConditions int `mapstructure:"min_filter_conditions"`
	// SimilarBrandLimit bounds the brand affinity expansion.
	SimilarBrandLimit int `mapstructure:"similar_brand_limit"`
	// AffinityCacheTTLSeconds is the Redis TTL for cached affinity lookups.
	AffinityCacheTTLSeconds int `mapstructure:"affinity_cache_ttl_seconds"`
	// QueryTimeoutMillis bounds each catalog store query.
	QueryTimeoutMillis int `mapstructure:"query_timeout_millis"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
