package config

import (
	"fmt"
	"math"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

// DefaultDPI is what decoders report when a file carries no resolution.
const DefaultDPI = 96

type Config struct {
	// DPI is used for inputs without a physical pixel size.
	DPI       float64 `yaml:"dpi"`
	OutDir    string  `yaml:"out_dir"`
	Overwrite bool    `yaml:"overwrite"`
	Debug     bool    `yaml:"debug"`
}

func Default() Config {
	return Config{DPI: DefaultDPI}
}

// Parse reads the command line. Values from the file named by --config
// are applied first, flags given explicitly override them. The remaining
// positional arguments are returned as input paths.
func Parse(fs afero.Fs, name string, args []string) (Config, []string, error) {
	set := flag.NewFlagSet(name, flag.ContinueOnError)

	file := set.StringP("config", "c", "", "yaml config file")
	dpi := set.Float64("dpi", DefaultDPI, "resolution for inputs without one")
	outDir := set.StringP("out-dir", "o", "", "write bitmaps into this dir instead of next to the input")
	overwrite := set.BoolP("overwrite", "f", false, "replace existing bitmaps")
	debug := set.Bool("debug", false, "set debug")

	if err := set.Parse(args); err != nil {
		return Config{}, nil, err
	}

	cfg := Default()
	if *file != "" {
		var err error
		if cfg, err = Load(fs, *file); err != nil {
			return Config{}, nil, err
		}
	}

	if set.Changed("dpi") {
		cfg.DPI = *dpi
	}
	if set.Changed("out-dir") {
		cfg.OutDir = *outDir
	}
	if set.Changed("overwrite") {
		cfg.Overwrite = *overwrite
	}
	if set.Changed("debug") {
		cfg.Debug = *debug
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}

	return cfg, set.Args(), nil
}

// Load decodes a yaml file over the defaults.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()

	bs, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, fmt.Errorf("read config failed: %w", err)
	}

	if err := yaml.UnmarshalStrict(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s failed: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if math.IsNaN(c.DPI) || c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %v", c.DPI)
	}
	return nil
}
