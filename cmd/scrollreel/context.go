package main

import (
	"log/slog"

	"github.com/ivlev/scrollreel/internal/config"
	"github.com/ivlev/scrollreel/internal/logging"
)

// commandContext lazily loads configuration and the logger for commands.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	cfg    *config.Config
	logger *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	cfg.BuildVersion = version
	if *c.logLevelFlag != "" {
		cfg.Logging.Level = *c.logLevelFlag
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	level := *c.logLevelFlag
	if c.cfg != nil {
		level = c.cfg.Logging.Level
	}
	logger, err := logging.Setup(level)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}
