package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tendermint/tendermint/libs/cli"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
	tmos "github.com/tendermint/tendermint/libs/os"

	"github.com/trustbond/emissionsd/param"
)

const flagLogLevel = "log_level"

func FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

func TrapSignal(cleanupFunc func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		if cleanupFunc != nil {
			cleanupFunc()
		}
		exitCode := 128
		switch sig {
		case syscall.SIGINT:
			exitCode += int(syscall.SIGINT)
		case syscall.SIGTERM:
			exitCode += int(syscall.SIGTERM)
		}
		os.Exit(exitCode)
	}()
}

func PersistentPreRunEFn(context *Context) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		config, err := interceptLoadConfig()
		if err != nil {
			return err
		}
		logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
		logger, err = tmflags.ParseLogLevel(viper.GetString(flagLogLevel), logger, "info")
		if err != nil {
			return err
		}
		logger = logger.With("module", "main")
		context.Config = config
		context.Logger = logger
		return nil
	}
}

func interceptLoadConfig() (*param.AppConfig, error) {
	rootDir := viper.GetString(cli.HomeFlag)
	if rootDir == "" {
		rootDir = DefaultNodeHome
	}
	configFilePath := filepath.Join(rootDir, "config", "app.toml")
	if !FileExists(configFilePath) {
		conf := param.DefaultAppConfigWithHome(rootDir)
		if err := tmos.EnsureDir(filepath.Dir(configFilePath), 0700); err != nil {
			return nil, err
		}
		param.WriteConfigFile(configFilePath, conf)
		return conf, nil
	}
	viper.SetConfigFile(configFilePath)
	if err := viper.MergeInConfig(); err != nil {
		return nil, err
	}
	return param.ParseConfig(rootDir)
}
