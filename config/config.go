package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // computed after load, not read from file
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"` // computed after load, not read from file
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // minutes
	} `yaml:"database"`

	Fetcher struct {
		PageTimeoutSec int    `yaml:"page_timeout_sec"` // budget for linked-page metadata fetch
		OCRURL         string `yaml:"ocr_url"`          // image text extraction sidecar, empty disables
		OCRAPIKey      string `yaml:"ocr_api_key"`
		OCRTimeoutSec  int    `yaml:"ocr_timeout_sec"`
	} `yaml:"fetcher"`

	Extract struct {
		MaxKeywords int `yaml:"max_keywords"` // cap on keywords stored per pin
	} `yaml:"extract"`

	Interact struct {
		LikeWeight    float64 `yaml:"like_weight"`
		CommentWeight float64 `yaml:"comment_weight"`
		SearchWeight  float64 `yaml:"search_weight"`
		QueueSize     int     `yaml:"queue_size"` // buffered event queue for the ledger workers
		Workers       int     `yaml:"workers"`    // ledger worker goroutines
	} `yaml:"interact"`

	Recommend struct {
		InterestTopK int `yaml:"interest_topk"` // interests pulled into the candidate key set
		DefaultLimit int `yaml:"default_limit"`
	} `yaml:"recommend"`

	Decay struct {
		Factor float64 `yaml:"factor"` // daily score multiplier, 0 or 1 disables decay
		Floor  float64 `yaml:"floor"`  // interests below this score are pruned after decay
	} `yaml:"decay"`

	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"`
		DecayHour        int `yaml:"decay_hour"`
		DecayMinute      int `yaml:"decay_minute"`
	} `yaml:"scheduler"`
}

func Load() *Config {
	// Load .env first; a missing file is fine, system environment still applies.
	_ = godotenv.Load()

	var cfg Config

	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")

		applyEnvOverrides(&cfg)
		applyDefaults(&cfg)
		return &cfg
	}

	return loadFromEnv()
}

// applyEnvOverrides pulls credentials from the environment so secrets never
// live in config.yaml.
func applyEnvOverrides(cfg *Config) {
	if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
		cfg.DB.Username = envUsername
	}
	if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
		cfg.DB.Password = envPassword
	}
	if envAPIKey := os.Getenv("OCR_API_KEY"); envAPIKey != "" {
		cfg.Fetcher.OCRAPIKey = envAPIKey
	}
}

func applyDefaults(cfg *Config) {
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if cfg.DB.DSN == "" && cfg.DB.Host != "" {
		if cfg.DB.Charset == "" {
			cfg.DB.Charset = "utf8mb4"
		}
		cfg.DB.DSN = buildDSN(cfg)
	}

	if cfg.Fetcher.PageTimeoutSec <= 0 {
		cfg.Fetcher.PageTimeoutSec = 7
	}
	if cfg.Fetcher.OCRTimeoutSec <= 0 {
		cfg.Fetcher.OCRTimeoutSec = 10
	}
	if cfg.Extract.MaxKeywords <= 0 {
		cfg.Extract.MaxKeywords = 16
	}
	if cfg.Interact.LikeWeight <= 0 {
		cfg.Interact.LikeWeight = 3
	}
	if cfg.Interact.CommentWeight <= 0 {
		cfg.Interact.CommentWeight = 2
	}
	if cfg.Interact.SearchWeight <= 0 {
		cfg.Interact.SearchWeight = 1
	}
	if cfg.Interact.QueueSize <= 0 {
		cfg.Interact.QueueSize = 1024
	}
	if cfg.Interact.Workers <= 0 {
		cfg.Interact.Workers = 4
	}
	if cfg.Recommend.InterestTopK <= 0 {
		cfg.Recommend.InterestTopK = 10
	}
	if cfg.Recommend.DefaultLimit <= 0 {
		cfg.Recommend.DefaultLimit = 30
	}
	if cfg.Scheduler.CheckIntervalSec <= 0 {
		cfg.Scheduler.CheckIntervalSec = 60
	}
}

func buildDSN(cfg *Config) string {
	parseTime := ""
	if cfg.DB.ParseTime {
		parseTime = "&parseTime=true"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Database,
		cfg.DB.Charset,
		parseTime)
}

// loadFromEnv builds a minimal configuration when config.yaml is absent.
func loadFromEnv() *Config {
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	if username := os.Getenv("DATABASE_USERNAME"); username != "" {
		cfg.DB.Username = username
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}

	if apiKey := os.Getenv("OCR_API_KEY"); apiKey != "" {
		cfg.Fetcher.OCRAPIKey = apiKey
	}
	if url := os.Getenv("OCR_URL"); url != "" {
		cfg.Fetcher.OCRURL = url
	}

	applyDefaults(&cfg)

	log.Println("Configuration loaded from environment variables, some settings may be missing")
	return &cfg
}
