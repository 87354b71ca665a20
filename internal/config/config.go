package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	SaToken  SaTokenConfig  `yaml:"sa_token"`
	Captcha  CaptchaConfig  `yaml:"captcha"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"` // dev, test, prod

	// AdminPassword 初始化管理员账号的密码，仅在首次创建时使用
	AdminPassword string `yaml:"admin_password"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         int    `yaml:"port"`
	Host         string `yaml:"host"`
	ReadTimeout  int    `yaml:"read_timeout"`  // 秒
	WriteTimeout int    `yaml:"write_timeout"` // 秒
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string   `yaml:"driver"` // mysql, postgres, sqlite
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	Username        string   `yaml:"username"`
	Password        string   `yaml:"password"`
	Database        string   `yaml:"database"`
	Schema          string   `yaml:"schema"` // postgres search_path
	Charset         string   `yaml:"charset"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	MaxOpenConns    int      `yaml:"max_open_conns"`
	ConnMaxLifetime int      `yaml:"conn_max_lifetime"` // 秒
	ConnMaxIdleTime int      `yaml:"conn_max_idle_time"`
	Replicas        []string `yaml:"replicas"` // 只读副本DSN
	LogLevel        string   `yaml:"log_level"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled Redis是否已配置
func (c RedisConfig) Enabled() bool {
	return c.Host != "" && c.Port > 0
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // json, console
	Output     string `yaml:"output"` // stdout, file, both
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

// SaTokenConfig SaToken配置
type SaTokenConfig struct {
	TokenName     string `yaml:"token_name"`
	Timeout       int64  `yaml:"timeout"`        // token有效期(秒)
	ActiveTimeout int64  `yaml:"active_timeout"` // token活跃检测超时时间(秒)
	IsConcurrent  bool   `yaml:"is_concurrent"`
	IsShare       bool   `yaml:"is_share"`
	MaxLoginCount int    `yaml:"max_login_count"`
	IsLog         bool   `yaml:"is_log"`
	TokenStyle    string `yaml:"token_style"` // uuid, simple-uuid, random-32, random-64, random-128, hash, timestamp, tik
}

// CaptchaConfig 滑块验证码配置
type CaptchaConfig struct {
	TTL        int      `yaml:"ttl"`       // 有效期(秒)
	Tolerance  int      `yaml:"tolerance"` // 允许误差(像素)
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	PieceSize  int      `yaml:"piece_size"`
	Background []string `yaml:"background"` // 背景图地址
	PuzzleURL  string   `yaml:"puzzle_url"` // 拼图块地址模板
	// MaxAttempts 单个验证码允许的失败次数，需要 Redis
	MaxAttempts int `yaml:"max_attempts"`
}

// LoadConfig 加载配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析YAML配置并补齐默认值
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回全部使用默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "uac"
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.AdminPassword == "" {
		c.App.AdminPassword = "admin123"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5555
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.Charset == "" {
		c.Database.Charset = "utf8mb4"
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 10
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 100
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.SaToken.TokenName == "" {
		c.SaToken.TokenName = "satoken"
	}
	if c.SaToken.Timeout == 0 {
		c.SaToken.Timeout = 86400
	}
	if c.SaToken.TokenStyle == "" {
		c.SaToken.TokenStyle = "uuid"
	}
	if c.SaToken.ActiveTimeout == 0 {
		c.SaToken.ActiveTimeout = -1
	}
	if c.Captcha.TTL <= 0 {
		c.Captcha.TTL = 120
	}
	if c.Captcha.Tolerance <= 0 {
		c.Captcha.Tolerance = 5
	}
	if c.Captcha.Width <= 0 {
		c.Captcha.Width = 310
	}
	if c.Captcha.Height <= 0 {
		c.Captcha.Height = 155
	}
	if c.Captcha.PieceSize <= 0 {
		c.Captcha.PieceSize = 50
	}
	if len(c.Captcha.Background) == 0 {
		c.Captcha.Background = []string{"/static/captcha/bg-1.png"}
	}
	if c.Captcha.MaxAttempts <= 0 {
		c.Captcha.MaxAttempts = 5
	}
	if c.Captcha.PuzzleURL == "" {
		c.Captcha.PuzzleURL = "/static/captcha/piece.png"
	}
}
