package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Reputation oracles. A missing endpoint or key disables the oracle and
	// resolves every request of that kind as missing_credential.
	LeakCheckEndpoint     string
	LeakCheckAPIKey       string
	SafeBrowsingEndpoint  string
	SafeBrowsingAPIKey    string
	SpamDirectoryEndpoint string
	OracleTimeout         time.Duration

	// Verdict policy
	RequireHTTPS      bool
	PhoneLengthPolicy string // "strict10" | "range10to15"
	BlockScope        string // "all" | "oracle"
	FakeDomainsFile   string

	// Background sweeper
	SweepInterval time.Duration

	// Kafka / alert fan-out
	KafkaBrokers       string
	KafkaConsumerGroup string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		LeakCheckEndpoint:     getEnv("LEAKCHECK_ENDPOINT", "https://api.leakcheck.io/check"),
		LeakCheckAPIKey:       getEnv("LEAKCHECK_API_KEY", ""),
		SafeBrowsingEndpoint:  getEnv("SAFE_BROWSING_ENDPOINT", "https://safebrowsing.googleapis.com/v4/threatMatches:find"),
		SafeBrowsingAPIKey:    getEnv("SAFE_BROWSING_API_KEY", ""),
		SpamDirectoryEndpoint: getEnv("SPAM_DIRECTORY_ENDPOINT", "https://scammer.info/api/phone"),
		OracleTimeout:         getMillis("ORACLE_TIMEOUT_MS", 5000),

		RequireHTTPS:      getBool("REQUIRE_HTTPS", true),
		PhoneLengthPolicy: getEnv("PHONE_LENGTH_POLICY", "strict10"),
		BlockScope:        getEnv("BLOCK_SCOPE", "all"),
		FakeDomainsFile:   getEnv("FAKE_DOMAINS_FILE", ""),

		SweepInterval: getMillis("SWEEP_INTERVAL_MS", 2000),

		KafkaBrokers:       getEnv("KAFKA_BROKERS", ""),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "vigil-alerts"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid bool %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getMillis(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Millisecond
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: invalid duration %s=%q, using %dms", key, v, fallback)
		return time.Duration(fallback) * time.Millisecond
	}
	return time.Duration(n) * time.Millisecond
}
