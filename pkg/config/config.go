package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Variant names.
const (
	VariantSpendLevel = "spend-level"
	VariantCampaign   = "campaign"
)

// EnvPrefix prefixes environment overrides, e.g. BIZVIZ_SEED.
const EnvPrefix = "BIZVIZ"

// Config is the full run configuration.
type Config struct {
	Seed    uint64 `mapstructure:"seed"`
	Rows    int    `mapstructure:"rows"`
	Variant string `mapstructure:"variant"`
	// Crop overrides the variant's crop mode when set.
	Crop     string  `mapstructure:"crop"`
	Output   string  `mapstructure:"output"`
	Palette  string  `mapstructure:"palette"`
	Width    float64 `mapstructure:"width"` // inches
	Height   float64 `mapstructure:"height"`
	DPI      int     `mapstructure:"dpi"`
	LogLevel string  `mapstructure:"logLevel"`
}

// Defaults reproduces the reference chart: 200 rows from seed 42, spend
// level by campaign type, 8in x 8in at 64 dpi written to chart.png.
func Defaults() Config {
	return Config{
		Seed:     42,
		Rows:     200,
		Variant:  VariantSpendLevel,
		Output:   "chart.png",
		Palette:  "Set2",
		Width:    8,
		Height:   8,
		DPI:      64,
		LogLevel: "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("seed", d.Seed)
	v.SetDefault("rows", d.Rows)
	v.SetDefault("variant", d.Variant)
	v.SetDefault("crop", d.Crop)
	v.SetDefault("output", d.Output)
	v.SetDefault("palette", d.Palette)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("dpi", d.DPI)
	v.SetDefault("logLevel", d.LogLevel)
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("config", "", "path to a YAML config file")
	fs.Uint64("seed", d.Seed, "random seed")
	fs.Int("rows", d.Rows, "number of observations to generate")
	fs.String("variant", d.Variant, "chart variant: spend-level or campaign")
	fs.String("crop", d.Crop, "crop mode override: tight or exact (default depends on variant)")
	fs.StringP("output", "o", d.Output, "output PNG path")
	fs.String("palette", d.Palette, "ColorBrewer qualitative palette")
	fs.Float64("width", d.Width, "canvas width in inches")
	fs.Float64("height", d.Height, "canvas height in inches")
	fs.Int("dpi", d.DPI, "raster resolution in dots per inch")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
}

var flagKeys = map[string]string{
	"seed":      "seed",
	"rows":      "rows",
	"variant":   "variant",
	"crop":      "crop",
	"output":    "output",
	"palette":   "palette",
	"width":     "width",
	"height":    "height",
	"dpi":       "dpi",
	"log-level": "logLevel",
}

// Load merges defaults, the optional config file named by the "config"
// flag, BIZVIZ_* environment variables and explicitly set flags, in
// increasing priority.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// AutomaticEnv upper-cases keys as-is; camelCase keys need an explicit binding.
	if err := v.BindEnv("logLevel", EnvPrefix+"_LOG_LEVEL"); err != nil {
		return Config{}, errors.WithStack(err)
	}

	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.Wrapf(err, "binding flag %s", flag)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			if err := readFile(v, f.Value.String()); err != nil {
				return Config{}, err
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func readFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "config file %s", path)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	log.WithField("file", v.ConfigFileUsed()).Debug("loaded config file")
	return nil
}

// Validate checks every field that the pipeline cannot recover from.
func (c Config) Validate() error {
	if c.Rows <= 0 {
		return errors.Errorf("config: rows must be positive, got %d", c.Rows)
	}
	switch c.Variant {
	case VariantSpendLevel, VariantCampaign:
	default:
		return errors.Errorf("config: unknown variant %q (want %q or %q)", c.Variant, VariantSpendLevel, VariantCampaign)
	}
	switch c.Crop {
	case "", "tight", "exact":
	default:
		return errors.Errorf("config: unknown crop mode %q (want tight or exact)", c.Crop)
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("config: output path is empty")
	}
	if c.Width <= 1 || c.Height <= 0 {
		return errors.Errorf("config: canvas must be wider than 1 inch and have a positive height, got %vx%v inches", c.Width, c.Height)
	}
	if c.DPI <= 0 {
		return errors.Errorf("config: dpi must be positive, got %d", c.DPI)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}
