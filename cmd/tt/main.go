package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"ttfocus/internal/bootstrap"
	"ttfocus/internal/config"
	"ttfocus/internal/i18n"
)

// version 在构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run 解析全局参数、加载配置并执行子命令，返回退出码
// run parses global flags, loads the config and dispatches one command.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config YAML (default $TT_CONFIG_PATH or the user config dir)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config failed: %v\n", err)
		return 1
	}

	logger := bootstrap.NewLogger(cfg, stderr)
	slog.SetDefault(logger)
	i18n.Init(cfg.Lang)

	c := &cli{
		cfg:         cfg,
		configPath:  *configPath,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		logger:      logger,
		loc:         time.Local,
		printer:     bootstrap.NewPrinter(cfg, time.Local),
		interactive: isTerminal(stdin),
	}
	defer c.close()
	return c.execute(fs.Args())
}
