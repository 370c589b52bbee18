package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	App struct {
		Name string `yaml:"name"`
		Env  string `yaml:"env"`
	} `yaml:"app"`

	Database struct {
		Driver   string `yaml:"driver"` // postgres, memory
		Postgres struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			DBName   string `yaml:"dbname"`
			SSLMode  string `yaml:"sslmode"`
		} `yaml:"postgres"`
	} `yaml:"database"`

	Blob struct {
		Driver     string `yaml:"driver"` // postgres, sqlite, memory
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"blob"`

	Imagen struct {
		APIKey            string        `yaml:"api_key"`
		BaseURL           string        `yaml:"base_url"`
		Model             string        `yaml:"model"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerMinute int           `yaml:"requests_per_minute"`
	} `yaml:"imagen"`

	Wrapped struct {
		Timezone  string        `yaml:"timezone"`
		Retention time.Duration `yaml:"retention"`
		Window    time.Duration `yaml:"window"`
	} `yaml:"wrapped"`

	Scheduler struct {
		GenerateSpec string `yaml:"generate_spec"`
		CleanupSpec  string `yaml:"cleanup_spec"`
	} `yaml:"scheduler"`

	NATS struct {
		URL     string `yaml:"url"`
		Enabled bool   `yaml:"enabled"`
	} `yaml:"nats"`

	API struct {
		Port          string        `yaml:"port"`
		ReadTimeout   time.Duration `yaml:"read_timeout"`
		WriteTimeout  time.Duration `yaml:"write_timeout"`
		CacheMaxItems int64         `yaml:"cache_max_items"`
	} `yaml:"api"`
}

// Default 返回带默认值的配置
func Default() *Config {
	var c Config
	c.App.Name = "daily-wrapped"
	c.App.Env = "dev"
	c.Database.Driver = "postgres"
	c.Database.Postgres.Host = "localhost"
	c.Database.Postgres.Port = 5432
	c.Database.Postgres.SSLMode = "disable"
	c.Blob.Driver = "postgres"
	c.Blob.SQLitePath = "data/wrapped_images.db"
	c.Imagen.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	c.Imagen.Model = "imagen-3.0-generate-002"
	c.Imagen.Timeout = 60 * time.Second
	c.Imagen.RequestsPerMinute = 10
	c.Wrapped.Timezone = "America/Los_Angeles"
	c.Wrapped.Retention = 24 * time.Hour
	c.Wrapped.Window = 24 * time.Hour
	// 太平洋时间每天 9:30
	c.Scheduler.GenerateSpec = "30 9 * * *"
	c.Scheduler.CleanupSpec = "@every 6h"
	c.NATS.URL = "nats://localhost:4222"
	c.API.Port = "8080"
	c.API.ReadTimeout = 10 * time.Second
	c.API.WriteTimeout = 30 * time.Second
	c.API.CacheMaxItems = 10000
	return &c
}

// LoadConfig 从文件加载配置
func LoadConfig(path string) (*Config, error) {
	// 读取配置文件
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	return Parse(data)
}

// Parse 解析YAML配置，未出现的字段保留默认值
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 环境变量覆盖
	overrideFromEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Wrapped.Retention <= 0 {
		return fmt.Errorf("wrapped.retention 必须大于0")
	}
	if c.Wrapped.Window <= 0 {
		return fmt.Errorf("wrapped.window 必须大于0")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Scheduler.GenerateSpec); err != nil {
		return fmt.Errorf("解析生成任务表达式失败: %w", err)
	}
	if _, err := parser.Parse(c.Scheduler.CleanupSpec); err != nil {
		return fmt.Errorf("解析清理任务表达式失败: %w", err)
	}

	switch c.Database.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", c.Database.Driver)
	}
	switch c.Blob.Driver {
	case "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("不支持的图片存储驱动: %s", c.Blob.Driver)
	}
	return nil
}

// Location 返回生成日期所使用的时区
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Wrapped.Timezone)
	if err != nil {
		return nil, fmt.Errorf("加载时区 %s 失败: %w", c.Wrapped.Timezone, err)
	}
	return loc, nil
}

// PostgresDSN 构建数据库连接字符串
func (c *Config) PostgresDSN() string {
	pg := c.Database.Postgres
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.DBName, pg.SSLMode,
	)
}

// overrideFromEnv 使用环境变量覆盖配置
func overrideFromEnv(config *Config) {
	// 应用名称
	if env := os.Getenv("APP_NAME"); env != "" {
		config.App.Name = env
	}

	// 环境
	if env := os.Getenv("APP_ENV"); env != "" {
		config.App.Env = env
	}

	// 数据库配置
	if env := os.Getenv("DB_DRIVER"); env != "" {
		config.Database.Driver = env
	}
	if env := os.Getenv("DB_HOST"); env != "" {
		config.Database.Postgres.Host = env
	}
	if env := os.Getenv("DB_PORT"); env != "" {
		if port, err := strconv.Atoi(env); err == nil && port > 0 {
			config.Database.Postgres.Port = port
		}
	}
	if env := os.Getenv("DB_USER"); env != "" {
		config.Database.Postgres.User = env
	}
	if env := os.Getenv("DB_PASSWORD"); env != "" {
		config.Database.Postgres.Password = env
	}
	if env := os.Getenv("DB_NAME"); env != "" {
		config.Database.Postgres.DBName = env
	}

	// 图片存储
	if env := os.Getenv("BLOB_DRIVER"); env != "" {
		config.Blob.Driver = env
	}
	if env := os.Getenv("BLOB_SQLITE_PATH"); env != "" {
		config.Blob.SQLitePath = env
	}

	// Imagen配置
	if env := os.Getenv("GOOGLE_AI_API_KEY"); env != "" {
		config.Imagen.APIKey = env
	}
	if env := os.Getenv("IMAGEN_BASE_URL"); env != "" {
		config.Imagen.BaseURL = env
	}
	if env := os.Getenv("IMAGEN_MODEL"); env != "" {
		config.Imagen.Model = env
	}

	// 时区
	if env := os.Getenv("WRAPPED_TIMEZONE"); env != "" {
		config.Wrapped.Timezone = env
	}

	// NATS配置
	if env := os.Getenv("NATS_URL"); env != "" {
		config.NATS.URL = env
		config.NATS.Enabled = true
	}

	// API配置
	if env := os.Getenv("API_PORT"); env != "" {
		config.API.Port = env
	}
}

// GetDefaultConfigPath 获取默认配置文件路径
func GetDefaultConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev" // 默认开发环境
	}

	return fmt.Sprintf("configs/%s/app.yaml", env)
}

// LoadDotEnv 加载第一个存在的 .env 文件，已有的环境变量不会被覆盖
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// Resolve 先加载 .env，再按 CONFIG_PATH、默认路径的顺序加载配置，文件不存在时使用默认值
func Resolve() (*Config, error) {
	LoadDotEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = GetDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Parse(nil)
	}
	return LoadConfig(configPath)
}
