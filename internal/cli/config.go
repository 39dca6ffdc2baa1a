// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override flags, e.g.
// PREPROCESS_PARAMS or PREPROCESS_LOG_LEVEL.
const EnvPrefix = "PREPROCESS"

// Config is the root-level settings struct, a mix of command line flags and
// environment variables.
type Config struct {
	// params file read before the run
	Params string `mapstructure:"params"`
	// params file written after the run; defaults to Params
	Out string `mapstructure:"out"`
	// directory the artifacts are written to
	Dir string `mapstructure:"dir"`
	// dataset descriptor (YAML or JSON)
	Dataset string `mapstructure:"dataset"`
	// dataset files manifest (CSV)
	Files    string `mapstructure:"files"`
	LogLevel string `mapstructure:"log-level"`
}

func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("params", "params.json", "path to the pipeline params file (JSON or YAML)")
	fs.String("out", "", "path the rewritten params are saved to (default: --params)")
	fs.String("dir", ".", "directory the decoded artifacts are written to")
	fs.String("dataset", "", "path to the dataset descriptor (YAML or JSON)")
	fs.String("files", "", "path to the dataset files manifest (CSV with a \"name\" or \"file\" column)")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
}

// loadConfig resolves the settings of one invocation from flags and
// environment.
func loadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if c.Out == "" {
		c.Out = c.Params
	}
	return c, nil
}

// newLogger returns a text logger tagged with a fresh run ID.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With("run_id", uuid.NewString()), nil
}
