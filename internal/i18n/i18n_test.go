package i18n

import "testing"

func TestNew_English(t *testing.T) {
	i := New("en")
	if i.Locale() != "en" {
		t.Fatalf("Locale()=%q, want en", i.Locale())
	}
	got := i.T("status.running")
	if got != "running" {
		t.Fatalf("T(status.running)=%q, want running", got)
	}
}

func TestNew_Chinese(t *testing.T) {
	i := New("zh-CN")
	if i.Locale() != "zh-CN" {
		t.Fatalf("Locale()=%q, want zh-CN", i.Locale())
	}
	got := i.T("status.running")
	if got != "进行中" {
		t.Fatalf("T(status.running)=%q, want 进行中", got)
	}
}

func TestNew_ChineseFromLang(t *testing.T) {
	i := New("zh_CN.UTF-8")
	if i.Locale() != "zh-CN" {
		t.Fatalf("Locale()=%q, want zh-CN", i.Locale())
	}
	got := i.T("lap.pause")
	if got != "暂停" {
		t.Fatalf("T(lap.pause)=%q, want 暂停", got)
	}
}

func TestT_WithArgs(t *testing.T) {
	i := New("en")
	got := i.T("event.stopped", "abc", "1h 5m")
	if got != "Stopped event abc. Work: 1h 5m." {
		t.Fatalf("T with args=%q", got)
	}

	zh := New("zh-CN")
	got = zh.T("event.started", "abc", "coding")
	if got != "已为 coding 开始事件 abc。" {
		t.Fatalf("indexed args=%q", got)
	}
}

func TestT_MissingKey(t *testing.T) {
	i := New("en")
	got := i.T("nonexistent.key")
	if got != "nonexistent.key" {
		t.Fatalf("T missing key=%q, want key itself", got)
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"en", "en", true},
		{"en_GB.UTF-8", "en", true},
		{"zh", "zh-CN", true},
		{"zh-Hans", "zh-CN", true},
		{"cn", "zh-CN", true},
		{"", "en", false},
		{"C", "en", false},
		{"???", "en", false},
	}
	for _, tc := range cases {
		got, ok := Match(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Match(%q)=%q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDetectLocale_TTLangWins(t *testing.T) {
	t.Setenv("TT_LANG", "zh-CN")
	t.Setenv("LANG", "en_US.UTF-8")
	if got := DetectLocale(); got != "zh-CN" {
		t.Fatalf("DetectLocale()=%q, want zh-CN", got)
	}
}

func TestCatalogsAligned(t *testing.T) {
	for k := range ZhCNMessages {
		if _, ok := EnMessages[k]; !ok {
			t.Errorf("zh-CN key %q missing from English catalog", k)
		}
	}
	for k := range EnMessages {
		if _, ok := ZhCNMessages[k]; !ok {
			t.Errorf("English key %q missing from zh-CN catalog", k)
		}
	}
}
