package param

import (
	"bytes"
	"text/template"

	"github.com/spf13/viper"
	tmos "github.com/tendermint/tendermint/libs/os"
)

const defaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

# directory of the checkpoint store
app_data_path = "{{ .AppDataPath }}"

# genesis emission schedule written by 'emissionsd init'
genesis_schedule_path = "{{ .GenesisSchedulePath }}"

# JSON-RPC server listening address
rpc-addr = "{{ .RpcAddr }}"

# JSON-RPC websocket listening address
ws-addr = "{{ .WsAddr }}"

# comma separated list of domains from which to accept cross origin requests
corsdomain = "{{ .CorsDomain }}"

# TLS certificate and key; both empty serves plain HTTP/WS
rpc-cert-file = "{{ .RpcCertFile }}"
rpc-key-file = "{{ .RpcKeyFile }}"

# shared secret for the admin namespace; empty disables appendCheckpoint
admin-token = "{{ .AdminToken }}"
`

var configTemplate *template.Template

func init() {
	var err error
	tmpl := template.New("appConfigFileTemplate")
	if configTemplate, err = tmpl.Parse(defaultConfigTemplate); err != nil {
		panic(err)
	}
}

func ParseConfig(homeDir string) (*AppConfig, error) {
	conf := DefaultAppConfigWithHome(homeDir)
	err := viper.Unmarshal(conf)
	return conf, err
}

func WriteConfigFile(configFilePath string, config *AppConfig) {
	var buffer bytes.Buffer
	if err := configTemplate.Execute(&buffer, config); err != nil {
		panic(err)
	}
	tmos.MustWriteFile(configFilePath, buffer.Bytes(), 0644)
}
