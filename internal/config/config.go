package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Redis       RedisConfig       `yaml:"redis"`
	ObjectStore ObjectStoreConfig `yaml:"object_store"`
	Translator  TranslatorConfig  `yaml:"translator"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Audio       AudioConfig       `yaml:"audio"`
	CORS        CORSConfig        `yaml:"cors"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"    env:"AUTH_JWT_SECRET"    env-required:"true"`
	JWTIssuer    string        `yaml:"jwt_issuer"    env:"AUTH_JWT_ISSUER"    env-default:"lingosteps"`
	SessionTTL   time.Duration `yaml:"session_ttl"   env:"AUTH_SESSION_TTL"   env-default:"168h"`
	CookieName   string        `yaml:"cookie_name"   env:"AUTH_COOKIE_NAME"   env-default:"session"`
	CookieSecure bool          `yaml:"cookie_secure" env:"AUTH_COOKIE_SECURE" env-default:"true"`
}

// RedisConfig holds settings for the redis instance backing the audio
// job queue.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// ObjectStoreConfig holds settings for the S3 compatible store that
// keeps rendered audio files.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"   env:"OBJECT_STORE_ENDPOINT"   env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"OBJECT_STORE_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"OBJECT_STORE_SECRET_KEY"`
	Bucket    string `yaml:"bucket"     env:"OBJECT_STORE_BUCKET"     env-default:"lingosteps-audio"`
	PublicURL string `yaml:"public_url" env:"OBJECT_STORE_PUBLIC_URL" env-default:"http://localhost:9000"`
	UseSSL    bool   `yaml:"use_ssl"    env:"OBJECT_STORE_USE_SSL"    env-default:"false"`
}

// TranslatorConfig holds settings for the sentence translation service.
type TranslatorConfig struct {
	BaseURL string        `yaml:"base_url" env:"TRANSLATOR_BASE_URL"`
	APIKey  string        `yaml:"api_key"  env:"TRANSLATOR_API_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"TRANSLATOR_TIMEOUT" env-default:"60s"`
	UseStub bool          `yaml:"use_stub" env:"TRANSLATOR_USE_STUB" env-default:"false"`
}

// GeneratorConfig holds settings for the text generation service.
type GeneratorConfig struct {
	BaseURL         string        `yaml:"base_url"          env:"GENERATOR_BASE_URL"`
	APIKey          string        `yaml:"api_key"           env:"GENERATOR_API_KEY"`
	Timeout         time.Duration `yaml:"timeout"           env:"GENERATOR_TIMEOUT"           env-default:"60s"`
	KnownWordsLimit int           `yaml:"known_words_limit" env:"GENERATOR_KNOWN_WORDS_LIMIT" env-default:"500"`
}

// AudioConfig holds settings for the background speech pipeline.
type AudioConfig struct {
	Enabled       bool          `yaml:"enabled"         env:"AUDIO_ENABLED"         env-default:"true"`
	QueueKey      string        `yaml:"queue_key"       env:"AUDIO_QUEUE_KEY"       env-default:"audio:jobs"`
	Voice         string        `yaml:"voice"           env:"AUDIO_VOICE"           env-default:"default"`
	PollTimeout   time.Duration `yaml:"poll_timeout"    env:"AUDIO_POLL_TIMEOUT"    env-default:"5s"`
	SweepInterval time.Duration `yaml:"sweep_interval"  env:"AUDIO_SWEEP_INTERVAL"  env-default:"5m"`
	StuckMaxAge   time.Duration `yaml:"stuck_max_age"   env:"AUDIO_STUCK_MAX_AGE"   env-default:"30m"`
	SpeechBaseURL string        `yaml:"speech_base_url" env:"AUDIO_SPEECH_BASE_URL"`
	SpeechAPIKey  string        `yaml:"speech_api_key"  env:"AUDIO_SPEECH_API_KEY"`
	UseStub       bool          `yaml:"use_stub"        env:"AUDIO_USE_STUB"        env-default:"false"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
