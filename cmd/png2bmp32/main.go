package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/salm7n/png2bmp32/internal/config"
	"github.com/salm7n/png2bmp32/internal/converter"
	"github.com/salm7n/png2bmp32/internal/storage"
)

func main() {
	cfg, inputs, err := config.Parse(afero.NewOsFs(), "png2bmp32", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	if len(inputs) == 0 {
		log.Fatal("usage: png2bmp32 [flags] <file.png>...")
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			storage.NewOs,
			newConverter,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Invoke(func(st *storage.Storage, c *converter.Converter, logger *zap.Logger) error {
			defer func() {
				_ = logger.Sync()
			}()
			return run(cfg, st, c, logger, lo.Uniq(inputs))
		}),
	)

	if app.Err() != nil {
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return lo.Ternary(cfg.Debug, zap.NewDevelopment, zap.NewProduction)()
}

func newConverter(cfg config.Config, st *storage.Storage, logger *zap.Logger) *converter.Converter {
	return converter.New(st, logger,
		converter.WithDPI(cfg.DPI),
		converter.WithOutDir(cfg.OutDir),
		converter.WithOverwrite(cfg.Overwrite),
	)
}

func run(cfg config.Config, st *storage.Storage, c *converter.Converter, logger *zap.Logger, inputs []string) error {
	if cfg.OutDir != "" {
		if exists, err := st.DirExists(cfg.OutDir); err != nil {
			return err
		} else if !exists {
			return fmt.Errorf("output dir %s not exists", cfg.OutDir)
		}
	}

	var bar *progressbar.ProgressBar
	if len(inputs) > 1 {
		bar = progressbar.Default(int64(len(inputs)), "converting")
	}

	var failed int
	for _, input := range inputs {
		if _, err := c.Convert(input); err != nil {
			failed++
			logger.With(zap.String("input", input), zap.Error(err)).Error("convert failed")
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(inputs))
	}

	return nil
}
