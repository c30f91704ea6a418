package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env           string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer    `yaml:"http_server"`
	Storage       Storage   `yaml:"storage"`
	AdminLogin    string    `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass     string    `yaml:"admin_pass" env:"ADMIN_PASS"`
	Discovery     Discovery `yaml:"discovery"`
	LLM           LLM       `yaml:"llm"`
	Engine        Engine    `yaml:"engine"`
	TemplatesPath string    `yaml:"templates_path" env:"TEMPLATES_PATH"`
	Log           Log       `yaml:"log"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type Storage struct {
	// Driver is either "mysql" or "postgres".
	Driver      string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mysql"`
	DBUser      string `yaml:"db_user" env:"DB_USER"`
	DBPassword  string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost      string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort      int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName      string `yaml:"db_name" env:"DB_NAME" env-default:"value_calculator"`
	PostgresURL string `yaml:"postgres_url" env:"DATABASE_URL"`
}

type Discovery struct {
	ScrapeTimeout     time.Duration `yaml:"scrape_timeout" env-default:"10s"`
	UserAgent         string        `yaml:"user_agent" env-default:"Mozilla/5.0 (compatible; ValueCalculator/1.0)"`
	MaxContentChars   int           `yaml:"max_content_chars" env-default:"8000"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" env-default:"2097152"`
	AllowPrivateHosts bool          `yaml:"allow_private_hosts" env:"DISCOVERY_ALLOW_PRIVATE_HOSTS"`
}

type LLM struct {
	APIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model   string        `yaml:"model" env:"LLM_MODEL" env-default:"gemini-2.5-flash"`
	Timeout time.Duration `yaml:"timeout" env-default:"60s"`
}

type Engine struct {
	// DiscountRate is nil when unset; an explicit 0 is a valid default.
	DiscountRate     *float64  `yaml:"discount_rate"`
	SensitivityRates []float64 `yaml:"sensitivity_rates" env-default:"0.05,0.08,0.10,0.12,0.15,0.20"`
}

type Log struct {
	ErrorFile string `yaml:"error_file" env-default:"errors.log"`
}

// MustConfig loads .env (when present) and the YAML file named by CONFIG_PATH.
func MustConfig() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if r := cfg.Engine.DiscountRate; r != nil && !(*r > -1 && *r < math.Inf(1)) {
		return nil, fmt.Errorf("engine.discount_rate %v must be a finite rate above -1", *r)
	}

	return &cfg, nil
}
