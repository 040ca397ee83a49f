package main

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"flavorprune/internal/config"
	"flavorprune/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the run logger from config, with flag overrides.
// Output goes to the command's stderr stream so report output on stdout
// stays clean.
func (c *commandContext) newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	level := cfg.Logging.Level
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		level = strings.TrimSpace(*c.logLevelFlag)
	}
	format := cfg.Logging.Format
	if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
		format = strings.TrimSpace(*c.logFormatFlag)
	}

	return logging.New(logging.Options{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})
}
