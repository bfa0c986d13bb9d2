package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	BasePath        string
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr           string `mapstructure:"addr"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db"`
	CategoryTTLSec int    `mapstructure:"categoryTTLSec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	QueryTimeoutMs     int
	AutoMigrate        bool
	LogLevel           string
}

// Content 列表分页与降级策略
type Content struct {
	Fallback     bool
	DefaultLimit int
	MaxLimit     int
}

// Limits 对应 transport 层的限流/背压中间件，<=0 表示不启用
type Limits struct {
	RPS               float64
	Burst             int
	PerIPRPS          float64
	PerIPBurst        int
	MaxConcurrent     int64
	MaxWaitMs         int // 等并发名额的最长时间
	MaxBodyBytes      int64
	RequestTimeoutSec int
}

type CORS struct {
	AllowOrigins []string
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Content Content
	Limits  Limits
	CORS    CORS
}

func (d DB) QueryTimeout() time.Duration {
	return time.Duration(d.QueryTimeoutMs) * time.Millisecond
}

func (j JWT) TTL() time.Duration {
	return time.Duration(j.AccessTokenTTLMin) * time.Minute
}

func (l Limits) MaxWait() time.Duration {
	return time.Duration(l.MaxWaitMs) * time.Millisecond
}

func (r Redis) CategoryTTL() time.Duration {
	return time.Duration(r.CategoryTTLSec) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "news-gateway")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.basePath", "")
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "news-gateway")
	v.SetDefault("jwt.accessTokenTTLMin", 120)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:news.db?_pragma=foreign_keys(1)")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.queryTimeoutMs", 3000)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.categoryTTLSec", 300)

	v.SetDefault("content.fallback", true)
	v.SetDefault("content.defaultLimit", 10)
	v.SetDefault("content.maxLimit", 100)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.perIPRPS", 20)
	v.SetDefault("limits.perIPBurst", 40)
	v.SetDefault("limits.maxConcurrent", 300)
	v.SetDefault("limits.maxWaitMs", 500)
	v.SetDefault("limits.maxBodyBytes", 1<<20)
	v.SetDefault("limits.requestTimeoutSec", 10)

	v.SetDefault("cors.allowOrigins", []string{})
}

// Read 读取 yaml 并叠加 APP_ 前缀的环境变量；文件不存在时只用默认值 + 环境变量
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	return &c, nil
}

func Load(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	c, err := Read(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return c
}
