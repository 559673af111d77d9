// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/noteful-service/internal/dao"
	"github.com/haierkeys/noteful-service/pkg/util"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":8080"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics / pprof），为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:8081"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型：sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/noteful.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name" default:"noteful"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，SQLite 固定为 1
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时）
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// RateLimit 每个客户端 IP 每秒允许的请求数，0 表示不限流
	RateLimit int64 `yaml:"rate-limit" default:"50"`
	// RateLimitBurst 令牌桶容量
	RateLimitBurst int64 `yaml:"rate-limit-burst" default:"100"`
	// ReferenceSweep 悬空引用清理的执行计划：时长（10m、1h、1d）或 5 段 cron 表达式，"0" 表示关闭
	ReferenceSweep string `yaml:"reference-sweep" default:"10m"`
	// CorsAllowOrigins 允许跨域的来源，为空表示允许所有
	CorsAllowOrigins []string `yaml:"cors-allow-origins"`
	// RouteLimits 按路径前缀的全局限流，所有客户端共享同一个令牌桶
	RouteLimits []RouteLimit `yaml:"route-limits"`
}

// RouteLimit 路径前缀限流规则，Path 需包含 /api 等前缀
type RouteLimit struct {
	Path  string `yaml:"path"`
	Rate  int64  `yaml:"rate"`
	Burst int64  `yaml:"burst"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// envOverrides 环境变量覆盖，环境变量优先于配置文件
var envOverrides = map[string]func(c *AppConfig, v string){
	"PORT": func(c *AppConfig, v string) {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		c.Server.HttpPort = v
	},
	"RUN_MODE":    func(c *AppConfig, v string) { c.Server.RunMode = v },
	"LOG_LEVEL":   func(c *AppConfig, v string) { c.Log.Level = v },
	"DB_TYPE":     func(c *AppConfig, v string) { c.Database.Type = v },
	"DB_PATH":     func(c *AppConfig, v string) { c.Database.Path = v },
	"DB_HOST":     func(c *AppConfig, v string) { c.Database.Host = v },
	"DB_NAME":     func(c *AppConfig, v string) { c.Database.Name = v },
	"DB_USER":     func(c *AppConfig, v string) { c.Database.UserName = v },
	"DB_PASSWORD": func(c *AppConfig, v string) { c.Database.Password = v },
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	// 配置文件同目录下的 .env 与工作目录下的 .env，已存在的环境变量不会被覆盖
	loadDotEnv(filepath.Join(filepath.Dir(realpath), ".env"), ".env")
	c.applyEnv(os.LookupEnv)

	if err := c.Validate(); err != nil {
		return nil, realpath, err
	}

	return c, realpath, nil
}

func loadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

func (c *AppConfig) applyEnv(lookup func(string) (string, bool)) {
	for key, apply := range envOverrides {
		if v, ok := lookup(key); ok && v != "" {
			apply(c, v)
		}
	}
}

// Validate 校验配置取值
func (c *AppConfig) Validate() error {
	switch c.Database.Type {
	case "sqlite", "mysql", "postgres":
	default:
		return errors.Errorf("unsupported database type %q", c.Database.Type)
	}
	for _, rl := range c.App.RouteLimits {
		if !strings.HasPrefix(rl.Path, "/") || rl.Rate <= 0 {
			return errors.Errorf("invalid app.route-limits entry %q", rl.Path)
		}
	}
	if _, err := c.GetReferenceSweep(); err != nil {
		return errors.Wrap(err, "invalid app.reference-sweep")
	}
	return nil
}

// GetContextTimeout 获取请求上下文超时时间
func (c *AppConfig) GetContextTimeout() time.Duration {
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

// GetConnMaxLifetime 获取连接最大生命周期
func (c *DatabaseConfig) GetConnMaxLifetime() time.Duration {
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil {
		return d
	}
	return 30 * time.Minute
}

// GetConnMaxIdleTime 获取空闲连接最大生命周期
func (c *DatabaseConfig) GetConnMaxIdleTime() time.Duration {
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil {
		return d
	}
	return 10 * time.Minute
}

// DaoConfig 转换为数据访问层使用的配置
func (c *DatabaseConfig) DaoConfig(runMode string) dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Type,
		Path:            c.Path,
		UserName:        c.UserName,
		Password:        c.Password,
		Host:            c.Host,
		Name:            c.Name,
		TablePrefix:     c.TablePrefix,
		AutoMigrate:     c.AutoMigrate,
		Charset:         c.Charset,
		MaxIdleConns:    c.MaxIdleConns,
		MaxOpenConns:    c.MaxOpenConns,
		ConnMaxLifetime: c.GetConnMaxLifetime(),
		ConnMaxIdleTime: c.GetConnMaxIdleTime(),
		RunMode:         runMode,
	}
}

// SweepSchedule 悬空引用清理计划
// Every > 0 时按固定间隔执行，否则 Cron 非空时按 cron 表达式执行，两者都为空表示关闭
type SweepSchedule struct {
	Every time.Duration
	Cron  string
}

// Disabled 是否关闭
func (s SweepSchedule) Disabled() bool {
	return s.Every <= 0 && s.Cron == ""
}

// GetReferenceSweep 解析悬空引用清理计划
func (c *AppConfig) GetReferenceSweep() (SweepSchedule, error) {
	v := strings.TrimSpace(c.App.ReferenceSweep)
	if v == "" || v == "0" || v == "off" {
		return SweepSchedule{}, nil
	}
	if strings.Count(v, " ") >= 4 || strings.HasPrefix(v, "@") {
		if _, err := cron.ParseStandard(v); err != nil {
			return SweepSchedule{}, err
		}
		return SweepSchedule{Cron: v}, nil
	}
	d, err := util.ParseDuration(v)
	if err != nil {
		return SweepSchedule{}, err
	}
	return SweepSchedule{Every: d}, nil
}
