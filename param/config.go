package param

import (
	"os"
	"path/filepath"
)

// AppConfig is the daemon's on-disk configuration (config/app.toml under
// the home directory).
type AppConfig struct {
	// directory of the pebble checkpoint store
	AppDataPath string `mapstructure:"app_data_path"`

	// path of the genesis schedule file written by `emissionsd init`
	GenesisSchedulePath string `mapstructure:"genesis_schedule_path"`

	// rpc config
	RpcAddr     string `mapstructure:"rpc-addr"`
	WsAddr      string `mapstructure:"ws-addr"`
	CorsDomain  string `mapstructure:"corsdomain"`
	RpcCertFile string `mapstructure:"rpc-cert-file"`
	RpcKeyFile  string `mapstructure:"rpc-key-file"`

	// shared secret required by the admin_* namespace; empty disables
	// the write surface entirely
	AdminToken string `mapstructure:"admin-token"`
}

var home = os.ExpandEnv("$HOME/.emissionsd")

func DefaultHome() string {
	return home
}

func DefaultAppConfig() *AppConfig {
	return DefaultAppConfigWithHome(home)
}

func DefaultAppConfigWithHome(homeDir string) *AppConfig {
	if homeDir == "" {
		homeDir = home
	}
	return &AppConfig{
		AppDataPath:         filepath.Join(homeDir, "data", "checkpoints"),
		GenesisSchedulePath: filepath.Join(homeDir, "config", "genesis_schedule.json"),
		RpcAddr:             DefaultRpcAddr,
		WsAddr:              DefaultWsAddr,
		CorsDomain:          "*",
	}
}
