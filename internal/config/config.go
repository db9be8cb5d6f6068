package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// ReplyPolicy controls which officer may reply to an assigned query.
const (
	ReplyPolicyStrict  = "strict"  // only the assigned officer
	ReplyPolicyLenient = "lenient" // any officer
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Queries struct {
		ReplyPolicy    string `yaml:"reply_policy"`
		MinQueryChars  int    `yaml:"min_query_chars"`
		MinReplyChars  int    `yaml:"min_reply_chars"`
		HistoryLimit   int    `yaml:"history_limit"`
		HistoryMaximum int    `yaml:"history_maximum"`
	} `yaml:"queries"`

	WebSocket struct {
		MaxConnectionsPerUser int `yaml:"max_connections_per_user"`
		SendBufferSize        int `yaml:"send_buffer_size"`
	} `yaml:"websocket"`

	Chatbot struct {
		OpenAIKey  string `yaml:"openai_key"`
		GeminiKey  string `yaml:"gemini_key"`
		WeatherKey string `yaml:"weather_key"`
	} `yaml:"chatbot"`

	Upload struct {
		Type         string `yaml:"type"`      // local, s3, cloudflare_r2
		BasePath     string `yaml:"base_path"` // For local storage
		BaseURL      string `yaml:"base_url"`  // Public URL base
		Bucket       string `yaml:"bucket"`    // For S3/R2
		Region       string `yaml:"region"`    // For S3
		AccessKey    string `yaml:"access_key"`
		SecretKey    string `yaml:"secret_key"`
		Endpoint     string `yaml:"endpoint"` // For R2 or custom S3
		MaxImageSize int64  `yaml:"max_image_size"`
		MaxAudioSize int64  `yaml:"max_audio_size"`
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or builds the config from environment
// variables when DATABASE_URL is set (test and container mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Printf("No config file at %s, falling back to defaults: %v", configPath, err)
			applyDefaults(&cfg)
			AppConfig = &cfg
			return
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.Chatbot.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Chatbot.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Chatbot.WeatherKey = os.Getenv("WEATHER_API_KEY")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "farmasathi-dev-secret"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60 * 24
	}
	if cfg.Queries.ReplyPolicy == "" {
		cfg.Queries.ReplyPolicy = ReplyPolicyLenient
	}
	if cfg.Queries.MinQueryChars == 0 {
		cfg.Queries.MinQueryChars = 10
	}
	if cfg.Queries.MinReplyChars == 0 {
		cfg.Queries.MinReplyChars = 20
	}
	if cfg.Queries.HistoryLimit == 0 {
		cfg.Queries.HistoryLimit = 50
	}
	if cfg.Queries.HistoryMaximum == 0 {
		cfg.Queries.HistoryMaximum = 100
	}
	if cfg.WebSocket.MaxConnectionsPerUser == 0 {
		cfg.WebSocket.MaxConnectionsPerUser = 8
	}
	if cfg.WebSocket.SendBufferSize == 0 {
		cfg.WebSocket.SendBufferSize = 256
	}
	if cfg.Upload.Type == "" {
		cfg.Upload.Type = "local"
	}
	if cfg.Upload.BasePath == "" {
		cfg.Upload.BasePath = "./uploads"
	}
	if cfg.Upload.BaseURL == "" {
		cfg.Upload.BaseURL = "/uploads"
	}
	if cfg.Upload.MaxImageSize == 0 {
		cfg.Upload.MaxImageSize = 10 * 1024 * 1024
	}
	if cfg.Upload.MaxAudioSize == 0 {
		cfg.Upload.MaxAudioSize = 20 * 1024 * 1024
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
