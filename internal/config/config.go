package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"ttfocus/internal/i18n"
)

const (
	appDirName     = "tt-focus"
	configFileName = "config.yaml"
	dbFileName     = "tt-focus.db"
)

// Config 应用级配置（语言、数据库路径、日志级别、主题）
// Config is the application config: language, database path, log level and theme.
// 阈值配置（split_min 等）保存在数据库中，不在这里。
type Config struct {
	Lang     string `yaml:"lang" env:"TT_LANG"`
	DBPath   string `yaml:"db_path" env:"TT_DB_PATH"`
	LogLevel string `yaml:"log_level" env:"TT_LOG_LEVEL"`
	Theme    string `yaml:"theme" env:"TT_THEME"`
}

// 支持的取值 / Accepted values
var (
	Langs     = []string{"en", "zh-CN"}
	LogLevels = []string{"debug", "info", "warn", "error"}
	Themes    = []string{"dark", "light", "plain"}
)

func Default() Config {
	return Config{
		Lang:     "en",
		DBPath:   "~/." + appDirName + "/" + dbFileName,
		LogLevel: "warn",
		Theme:    "dark",
	}
}

// Path 返回配置文件路径：TT_CONFIG_PATH 优先，否则 <UserConfigDir>/tt-focus/config.yaml
// Path resolves the config file: TT_CONFIG_PATH wins, then the user config dir.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv("TT_CONFIG_PATH")); p != "" {
		return expandPath(p)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Load 读取配置文件（不存在时写入默认值），再应用环境变量覆盖
// Load reads the config file, creating it with defaults on first run, then
// applies TT_* environment overrides. An empty path means Path().
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg, found, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if !found {
		if err := Save(resolved, cfg); err != nil {
			return Config{}, err
		}
	}

	return applyEnv(cfg)
}

// Update 只修改文件中的值（不含环境变量覆盖）并写回
// Update applies mutate to the file values, without env overrides, and saves them.
func Update(path string, mutate func(*Config) error) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	cfg, _, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if err := mutate(&cfg); err != nil {
		return Config{}, err
	}
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	if err := Save(resolved, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return Path()
	}
	return expandPath(path)
}

func readFile(path string) (Config, bool, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, false, nil
		}
		return Config{}, false, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, false, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg = merge(cfg, fileCfg)
	if err := normalize(&cfg); err != nil {
		return Config{}, false, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, true, nil
}

func merge(base, override Config) Config {
	if strings.TrimSpace(override.Lang) != "" {
		base.Lang = override.Lang
	}
	if strings.TrimSpace(override.DBPath) != "" {
		base.DBPath = override.DBPath
	}
	if strings.TrimSpace(override.LogLevel) != "" {
		base.LogLevel = override.LogLevel
	}
	if strings.TrimSpace(override.Theme) != "" {
		base.Theme = override.Theme
	}
	return base
}

func applyEnv(cfg Config) (Config, error) {
	var overrides Config
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg = merge(cfg, overrides)
	return cfg, normalize(&cfg)
}

func normalize(cfg *Config) error {
	var errs []error

	lang, err := NormalizeLang(cfg.Lang)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Lang = lang

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	if !containsString(LogLevels, cfg.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log_level %q (want one of %s)", cfg.LogLevel, strings.Join(LogLevels, ", ")))
	}

	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if cfg.Theme == "" {
		cfg.Theme = Default().Theme
	}
	if !containsString(Themes, cfg.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (want one of %s)", cfg.Theme, strings.Join(Themes, ", ")))
	}

	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = Default().DBPath
	}
	dbPath, err := expandPath(cfg.DBPath)
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.DBPath = dbPath
	}

	return errors.Join(errs...)
}

// NormalizeLang 把 en / zh-CN 的各种写法（zh、zh_CN.UTF-8…）归一化
// NormalizeLang maps spellings such as zh or zh_CN.UTF-8 onto a supported locale.
func NormalizeLang(lang string) (string, error) {
	if strings.TrimSpace(lang) == "" {
		return "en", nil
	}
	locale, ok := i18n.Match(lang)
	if !ok {
		return locale, fmt.Errorf("unsupported lang %q (want one of %s)", lang, strings.Join(Langs, ", "))
	}
	return locale, nil
}

// SlogLevel 把 log_level 转成 slog.Level
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

func containsString(items []string, needle string) bool {
	for _, item := range items {
		if item == needle {
			return true
		}
	}
	return false
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}
