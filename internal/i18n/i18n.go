package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// I18n 国际化支持
// I18n provides internationalization support
type I18n struct {
	locale   string
	messages map[string]string
	mu       sync.RWMutex
}

var (
	global     *I18n
	globalOnce sync.Once
)

// 支持的语言，顺序与 matcher 下标一致 / Supported locales, in matcher order
var (
	supported = []language.Tag{language.English, language.SimplifiedChinese}
	locales   = []string{"en", "zh-CN"}
	matcher   = language.NewMatcher(supported)
)

// Global 返回全局 i18n 实例
// Global returns the global i18n instance
func Global() *I18n {
	globalOnce.Do(func() {
		if global == nil {
			global = New("")
		}
	})
	return global
}

// Init 初始化全局 i18n 实例
// Init initializes the global i18n instance
func Init(locale string) {
	globalOnce.Do(func() {})
	global = New(locale)
}

// T 全局翻译快捷函数
// T is a global translation shortcut
func T(key string, args ...any) string {
	return Global().T(key, args...)
}

// New 创建 i18n 实例
// New creates an i18n instance
func New(locale string) *I18n {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DetectLocale()
	}
	locale, _ = Match(locale)

	i := &I18n{
		locale:   locale,
		messages: make(map[string]string, len(EnMessages)),
	}

	// 先加载英文作为 fallback / Load English as fallback first
	for k, v := range EnMessages {
		i.messages[k] = v
	}

	// 如果是中文，覆盖 / If Chinese, overlay
	if locale == "zh-CN" {
		for k, v := range ZhCNMessages {
			i.messages[k] = v
		}
	}

	return i
}

// T 翻译函数 / Translation function
func (i *I18n) T(key string, args ...any) string {
	i.mu.RLock()
	tmpl, ok := i.messages[key]
	i.mu.RUnlock()

	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Locale 返回当前 locale
// Locale returns current locale
func (i *I18n) Locale() string {
	return i.locale
}

// DetectLocale 自动检测 locale
// DetectLocale auto-detects locale from environment
func DetectLocale() string {
	for _, env := range []string{"TT_LANG", "LC_ALL", "LC_MESSAGES", "LANG"} {
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			continue
		}
		locale, _ := Match(v)
		return locale
	}
	return "en"
}

// Match 把任意语言标签（zh_CN.UTF-8、zh-Hans、en-GB…）匹配到支持的 locale；
// 无法匹配时返回 "en" 和 false
// Match maps a language tag such as zh_CN.UTF-8 or en-GB to a supported
// locale. It returns "en" and false when nothing matches.
func Match(s string) (string, bool) {
	s = strings.TrimSpace(s)
	// 去掉 .UTF-8、@euro 等后缀 / Remove .UTF-8 and @modifier suffixes
	if idx := strings.IndexAny(s, ".@"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if strings.EqualFold(s, "cn") {
		s = "zh-CN"
	}
	if s == "" {
		return "en", false
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "en", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "en", false
	}
	return locales[idx], true
}
