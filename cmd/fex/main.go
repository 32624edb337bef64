package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/fex/internal/app"
	"github.com/kk-code-lab/fex/internal/config"
	fsutil "github.com/kk-code-lab/fex/internal/fs"
	"github.com/kk-code-lab/fex/internal/logging"
	"github.com/kk-code-lab/fex/internal/session"
	"github.com/kk-code-lab/fex/internal/shellsetup"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// UTF-8 fallback so non-ASCII names render on terminals with odd locales
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fex: %v\n", err)
		return 2
	}

	if cfg.Setup {
		if err := shellsetup.PrintSetup(os.Stdout, cfg.Shell, shellsetup.Config{}); err != nil {
			fmt.Fprintf(os.Stderr, "fex: %v\n", err)
			return 1
		}
		return 0
	}

	if err := logging.Initialize(cfg.Debug, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer func() {
		_ = logging.Sync()
	}()
	logger := logging.L()

	sess := session.New(fsutil.NewOSAccessor(),
		session.WithHistoryLimit(cfg.HistoryLimit),
		session.WithSort(cfg.SortKey(), cfg.Desc),
		session.WithHomeDir(cfg.Home),
		session.WithLogger(logger),
	)

	app, err := apppkg.NewApplication(sess, cfg.Path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		return 1
	}

	app.Run()
	if err := app.Close(); err != nil {
		logger.Warn("closing screen", zap.Error(err))
	}

	if dir := app.ExitPath(); dir != "" {
		if err := shellsetup.WriteResult(dir, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write result: %v\n", err)
			return 1
		}
	}
	return 0
}
