// api/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Gate          GateConfiguration
	Cache         CacheConfiguration
	Provider      ProviderConfiguration
	Payment       PaymentConfiguration
	Auth          AuthConfiguration
	RateLimit     RateLimitConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	Audit         AuditConfiguration
	Log           LogConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port            string
	ShutdownTimeout time.Duration
}

// GateConfiguration describes which certificate unlocks the weather endpoint
type GateConfiguration struct {
	RequiredCertificateType string
	TrustedCertifier        string
	RequestedFields         []string
}

type CacheConfiguration struct {
	FreshnessWindow time.Duration
	FetchTimeout    time.Duration
}

// ProviderConfiguration selects and tunes the upstream weather source
type ProviderConfiguration struct {
	Mode      string
	URL       string
	Timeout   time.Duration
	UserAgent string
}

type PaymentConfiguration struct {
	Enabled        bool
	Price          int64
	PayTo          string
	Network        string
	FacilitatorURL string
	Timeout        time.Duration
}

type AuthConfiguration struct {
	Secret               string
	AllowUnauthenticated bool
}

type RateLimitConfiguration struct {
	Enabled  bool
	Backend  string
	Requests int
	Per      time.Duration
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr     string
	Password string
	DB       int
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

type AuditConfiguration struct {
	Enabled bool
	Index   string
}

type LogConfiguration struct {
	Dir   string
	Level string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match, e.g. AUTH_SECRET

	SetDefaults()

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// SetDefaults registers the default value of every known key
func SetDefaults() {
	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.shutdownTimeout", "5s")

	viper.SetDefault("gate.requiredCertificateType", "AGfk/WrT1eBDXpz3mcw386Zww2HmqcIn3uY6x4Af1eo=")
	viper.SetDefault("gate.trustedCertifier", "0220529dc803041a83f4357864a09c717daa24397cf2f3fc3a5745ae08d30924fd")
	viper.SetDefault("gate.requestedFields", []string{"cool"})

	viper.SetDefault("cache.freshnessWindow", "5m")
	viper.SetDefault("cache.fetchTimeout", "30s")

	viper.SetDefault("provider.mode", "synthetic")
	viper.SetDefault("provider.url", "https://api.nasa.gov/insight_weather/?api_key=DEMO_KEY&feedtype=json&ver=1.0")
	viper.SetDefault("provider.timeout", "10s")
	viper.SetDefault("provider.userAgent", "weathergate/1.0")

	viper.SetDefault("payment.enabled", true)
	viper.SetDefault("payment.price", 1)
	viper.SetDefault("payment.payTo", "")
	viper.SetDefault("payment.network", "base-sepolia")
	viper.SetDefault("payment.facilitatorURL", "https://x402.org/facilitator")
	viper.SetDefault("payment.timeout", "15s")

	viper.SetDefault("auth.secret", "")
	viper.SetDefault("auth.allowUnauthenticated", false)

	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.backend", "memory")
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.per", "1m")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("audit.enabled", false)
	viper.SetDefault("audit.index", "weather-access-logs")
	viper.SetDefault("log.dir", "logging")
	viper.SetDefault("log.level", "info")
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
