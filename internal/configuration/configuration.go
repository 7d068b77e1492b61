package configuration

import (
	"os"
	"strings"
	"time"

	"github.com/jeremywohl/flatten"
	"github.com/mitchellh/copystructure"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/soc-toolbox/esmbridge/internal/esm"
	"github.com/soc-toolbox/esmbridge/internal/model"
)

const (
	defaultMonitorInterval = 30 * time.Second

	redacted = "<redacted>"
)

// Configuration holds application configuration read from a YAML file or set
// by env variables.
// nolint:govet // prefer readability over field alignment optimization for this case.
type Configuration struct {
	// LogLevel is the app verbose logging level.
	// one of - info, debug, trace
	LogLevel string `mapstructure:"log_level"`

	// MonitorInterval is how often the health monitor polls the upstream.
	MonitorInterval time.Duration `mapstructure:"monitor_interval"`

	// Esm defines the ESM API client configuration parameters.
	Esm *esm.Config `mapstructure:"esm"`

	EnableProfiling bool `mapstructure:"enable_profiling"`
}

// New creates an empty configuration struct.
func New() *Configuration {
	config := &Configuration{}

	// these are initialized here so viper can read in configuration from env vars
	// once https://github.com/spf13/viper/pull/1429 is merged, this can go.
	config.Esm = &esm.Config{}

	return config
}

func (c *Configuration) AsLogFields() []any {
	return []any{
		"logLevel", c.LogLevel,
		"esmEndpoint", c.Esm.Endpoint,
		"esmLoginEndpoint", c.Esm.LoginEndpoint,
		"staticToken", c.Esm.StaticToken != "",
		"monitorInterval", c.MonitorInterval.String(),
		"enableProfiling", c.EnableProfiling,
	}
}

// Redacted returns a deep copy of the configuration with secrets blanked,
// safe to dump in diagnostics.
func (c *Configuration) Redacted() (*Configuration, error) {
	copied, err := copystructure.Copy(c)
	if err != nil {
		return nil, errors.Wrap(model.ErrConfig, err.Error())
	}

	clone, ok := copied.(*Configuration)
	if !ok {
		return nil, errors.Wrap(model.ErrConfig, "configuration copy error")
	}

	if clone.Esm.Password != "" {
		clone.Esm.Password = redacted
	}

	if clone.Esm.StaticToken != "" {
		clone.Esm.StaticToken = redacted
	}

	if clone.Esm.OidcClientSecret != "" {
		clone.Esm.OidcClientSecret = redacted
	}

	return clone, nil
}

func (c *Configuration) LoadArgs(args *model.Args) {
	if args.LogLevel != "" {
		c.LogLevel = args.LogLevel
	}

	if args.EnableProfiling {
		c.EnableProfiling = true
	}
}

// Load the application configuration.
// Reads in the configFile when available and overrides from environment variables.
func Load(args *model.Args) (*Configuration, error) {
	viperConfig := viper.New()
	viperConfig.SetConfigType("yaml")
	viperConfig.SetEnvPrefix(model.AppName)
	viperConfig.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperConfig.AutomaticEnv()

	config := New()

	if err := config.envBindVars(viperConfig); err != nil {
		return nil, errors.Wrap(model.ErrConfig, "env var bind error: "+err.Error())
	}

	if args.ConfigFile != "" {
		fh, err := os.Open(args.ConfigFile)
		if err != nil {
			return nil, errors.Wrap(model.ErrConfig, err.Error())
		}

		if err = viperConfig.ReadConfig(fh); err != nil {
			return nil, errors.Wrap(model.ErrConfig, "ReadConfig error: "+err.Error())
		}
	}

	if err := viperConfig.Unmarshal(config); err != nil {
		return nil, errors.Wrap(model.ErrConfig, err.Error())
	}

	config.LoadArgs(args)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Configuration) validate() error {
	if c.Esm == nil || c.Esm.Endpoint == "" {
		return errors.Wrap(model.ErrConfig, "esm endpoint not defined")
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.MonitorInterval <= 0 {
		c.MonitorInterval = defaultMonitorInterval
	}

	return nil
}

// envBindVars binds environment variables to the struct
// without a configuration file being unmarshalled,
// this is a workaround for a viper bug,
//
// This can be replaced by the solution in https://github.com/spf13/viper/pull/1429
// once that PR is merged.
func (c *Configuration) envBindVars(viperConfig *viper.Viper) error {
	envKeysMap := map[string]interface{}{}
	if err := mapstructure.Decode(c, &envKeysMap); err != nil {
		return err
	}

	// Flatten nested conf map
	flat, err := flatten.Flatten(envKeysMap, "", flatten.DotStyle)
	if err != nil {
		return errors.Wrap(err, "Unable to flatten config")
	}

	for k := range flat {
		if err := viperConfig.BindEnv(k); err != nil {
			return errors.Wrap(model.ErrConfig, "env var bind error: "+err.Error())
		}
	}

	return nil
}
