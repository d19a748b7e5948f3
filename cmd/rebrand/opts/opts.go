package opts

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/rebrand/pkg/config"
	"github.com/walteh/rebrand/pkg/guard"
	"github.com/walteh/rebrand/pkg/log"
	"github.com/walteh/rebrand/pkg/text"
	"github.com/walteh/rebrand/pkg/walk"
)

// EnvPrefix prefixes the environment variables that mirror each flag,
// for example REBRAND_FROM or REBRAND_NO_SUPABASE_CHECK.
const EnvPrefix = "REBRAND"

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	LogFile    string

	From string
	To   string
	Root string
	Mode string

	DryRun          bool
	Verbose         bool
	Strict          bool
	NoSupabaseCheck bool

	// StrictSet records that Strict came from a flag or the environment,
	// so an explicit false wins over the config file.
	StrictSet bool

	Stdout     io.Writer
	UserLogger *log.UserLogger
}

// NewEnv returns a viper instance bound to flags and to EnvPrefix variables.
// A flag set on the command line wins over its environment variable.
func NewEnv(flags ...*pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, fs := range flags {
		if err := v.BindPFlags(fs); err != nil {
			return nil, errors.Errorf("binding flags: %w", err)
		}
	}
	return v, nil
}

// LoadEnv copies the effective flag values out of v.
func (o *RootOpts) LoadEnv(v *viper.Viper) {
	o.ConfigFile = v.GetString("config")
	o.Debug = v.GetBool("debug")
	o.LogFile = v.GetString("log-file")
	o.From = v.GetString("from")
	o.To = v.GetString("to")
	o.Root = v.GetString("root")
	o.Mode = v.GetString("mode")
	o.Strict = v.GetBool("strict")
	o.StrictSet = v.IsSet("strict")
	o.Verbose = v.GetBool("verbose")
	o.DryRun = v.GetBool("dry-run")
	o.NoSupabaseCheck = v.GetBool("no-supabase-check")
}

// Resolve loads the config file and applies flag overrides on top of it.
// requireTo is false for commands that only need the from name.
func (o *RootOpts) Resolve(ctx context.Context, requireTo bool) (*config.Config, error) {
	dir := o.Root
	if dir == "" {
		dir = config.DefaultRoot
	}

	cfg, err := config.Discover(ctx, dir, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if o.From != "" {
		cfg.From = o.From
	}
	if o.To != "" {
		cfg.To = o.To
	}
	if o.Root != "" {
		cfg.Root = o.Root
	}
	if o.Mode != "" {
		cfg.Mode = o.Mode
	}
	if o.StrictSet || o.Strict {
		cfg.Strict = o.Strict
	}
	if o.NoSupabaseCheck {
		disabled := false
		cfg.Supabase.Enabled = &disabled
	}

	if err := cfg.Validate(requireTo); err != nil {
		return nil, errors.Errorf("invalid configuration: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("resolved configuration")

	return cfg, nil
}

// Walker builds the file walker for cfg. Config files are always skipped.
func Walker(cfg *config.Config) *walk.Walker {
	ignoreFiles := append(append([]string(nil), cfg.IgnoreFiles...), config.DefaultFiles...)
	return walk.New(walk.Policy{
		IgnoreDirs:       cfg.IgnoreDirs,
		IgnoreFiles:      ignoreFiles,
		BinaryExtensions: cfg.BinaryExtensions,
		RespectGitignore: cfg.GitignoreEnabled(),
	})
}

// Guard builds the local backend guard for cfg.
func Guard(cfg *config.Config) guard.Guard {
	if !cfg.Supabase.IsEnabled() {
		return guard.Disabled{}
	}
	return guard.NewPortGuard(cfg.Supabase.Host, cfg.Supabase.Ports, cfg.Supabase.Timeout())
}

// Replacer builds the text replacer for cfg.
func Replacer(cfg *config.Config) (text.Replacer, error) {
	mode, err := text.ParseMode(cfg.Mode)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return text.NewReplacer(mode)
}
