// Package config 加载与保存运行配置
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// MatchConfig 模板匹配参数
type MatchConfig struct {
	Threshold   float64 `mapstructure:"threshold"`
	ScaleMin    float64 `mapstructure:"scale_min"`
	ScaleMax    float64 `mapstructure:"scale_max"`
	ScaleStep   float64 `mapstructure:"scale_step"`
	MaxAttempts int     `mapstructure:"max_attempts"`
	Boost       float64 `mapstructure:"boost"`
}

// OCRConfig 文字识别参数
type OCRConfig struct {
	Engine         string `mapstructure:"engine"`
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
	Language       string `mapstructure:"language"`
	Whitelist      string `mapstructure:"whitelist"`
	ModelDir       string `mapstructure:"model_dir"`
}

// TimingConfig 交互节奏参数（毫秒）
type TimingConfig struct {
	SettleDelayMs  int `mapstructure:"settle_delay_ms"`
	EditDelayMs    int `mapstructure:"edit_delay_ms"`
	ConfirmDelayMs int `mapstructure:"confirm_delay_ms"`
	FocusDelayMs   int `mapstructure:"focus_delay_ms"`
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
}

// HostConfig 宿主程序识别参数
type HostConfig struct {
	ProcessNames []string `mapstructure:"process_names"`
}

// DebugConfig 调试输出参数
type DebugConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// ControlOverride 单个控件的配置覆盖，零值字段不生效
type ControlOverride struct {
	Min      *float64 `mapstructure:"min"`
	Max      *float64 `mapstructure:"max"`
	Default  *float64 `mapstructure:"default"`
	Template string   `mapstructure:"template"`
}

// Config 全部运行配置
type Config struct {
	Match        MatchConfig                `mapstructure:"match"`
	OCR          OCRConfig                  `mapstructure:"ocr"`
	Timing       TimingConfig               `mapstructure:"timing"`
	Host         HostConfig                 `mapstructure:"host"`
	Debug        DebugConfig                `mapstructure:"debug"`
	TemplatesDir string                     `mapstructure:"templates_dir"`
	Controls     map[string]ControlOverride `mapstructure:"controls"`
}

// Manager 配置管理器
type Manager struct {
	configDir string
	v         *viper.Viper
	mu        sync.RWMutex
}

// NewManager 创建配置管理器，配置目录为 ~/.vocalpilot
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".vocalpilot"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("VOCALPILOT")
	v.AutomaticEnv()
	setDefaults(v, configDir)

	return &Manager{configDir: configDir, v: v}
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("match.threshold", 0.65)
	v.SetDefault("match.scale_min", 0.6)
	v.SetDefault("match.scale_max", 1.4)
	v.SetDefault("match.scale_step", 0.1)
	v.SetDefault("match.max_attempts", 12)
	v.SetDefault("match.boost", 0.02)

	v.SetDefault("ocr.engine", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.whitelist", "ABCDEFGHIJKLMNOPQRSTUVWXYZ")

	v.SetDefault("timing.settle_delay_ms", 300)
	v.SetDefault("timing.edit_delay_ms", 150)
	v.SetDefault("timing.confirm_delay_ms", 200)
	v.SetDefault("timing.focus_delay_ms", 500)
	v.SetDefault("timing.poll_interval_ms", 2000)

	v.SetDefault("host.process_names", []string{"studio one", "cubase", "ableton"})

	v.SetDefault("debug.enabled", false)
	v.SetDefault("debug.dir", filepath.Join(configDir, "debug"))

	v.SetDefault("templates_dir", filepath.Join(configDir, "templates"))
}

// Load 加载配置。文件不存在时返回默认配置。
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return defaultConfig(m.configDir), fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var config Config
	if err := m.v.Unmarshal(&config); err != nil {
		return defaultConfig(m.configDir), fmt.Errorf("解析配置文件失败: %w", err)
	}
	return &config, nil
}

// Save 将当前配置写入配置文件
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}
	if err := m.v.WriteConfigAs(m.ConfigFile()); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// Set 设置配置项（点分路径）
func (m *Manager) Set(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v.Set(key, value)
}

// ConfigDir 获取配置目录
func (m *Manager) ConfigDir() string {
	return m.configDir
}

// ConfigFile 获取配置文件路径
func (m *Manager) ConfigFile() string {
	return filepath.Join(m.configDir, "config.yaml")
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.ConfigFile())
	return err == nil
}

// Apply 将控件覆盖项合并到描述列表
func (o ControlOverride) Apply(minV, maxV, defaultV *float64, template *string) {
	if o.Min != nil {
		*minV = *o.Min
	}
	if o.Max != nil {
		*maxV = *o.Max
	}
	if o.Default != nil {
		*defaultV = *o.Default
	}
	if o.Template != "" {
		*template = o.Template
	}
}

func defaultConfig(configDir string) *Config {
	v := viper.New()
	setDefaults(v, configDir)
	var config Config
	// 默认值可解析，此处不会失败
	_ = v.Unmarshal(&config)
	return &config
}
