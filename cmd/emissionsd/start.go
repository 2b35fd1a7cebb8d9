package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trustbond/emissionsd/api"
	"github.com/trustbond/emissionsd/app"
	"github.com/trustbond/emissionsd/rpc"
)

const (
	flagRpcAddr    = "http.addr"
	flagWsAddr     = "ws.addr"
	flagCorsDomain = "http.corsdomain"
)

// StartCmd runs the emissions daemon: open the checkpoint store, rebuild
// the controller and serve the JSON-RPC interfaces until signalled.
func StartCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the emissions daemon",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx.Logger.Info("starting emissions daemon...")

			cfg := ctx.Config
			if addr := viper.GetString(flagRpcAddr); addr != "" {
				cfg.RpcAddr = addr
			}
			if addr := viper.GetString(flagWsAddr); addr != "" {
				cfg.WsAddr = addr
			}
			if domain := viper.GetString(flagCorsDomain); domain != "" {
				cfg.CorsDomain = domain
			}

			a, err := app.NewApp(cfg, ctx.Logger)
			if err != nil {
				return err
			}
			backend := api.NewBackend(a)
			server := rpc.NewServer(cfg.RpcAddr, cfg.WsAddr, cfg.CorsDomain,
				backend, cfg.RpcCertFile, cfg.RpcKeyFile, ctx.Logger, cfg.AdminToken)
			if err := server.Start(); err != nil {
				a.Stop()
				return err
			}

			TrapSignal(func() {
				ctx.Logger.Info("shutting down...")
				if err := server.Stop(); err != nil {
					ctx.Logger.Error("error stopping rpc server", "err", err)
				}
				a.Stop()
			})

			select {}
		},
	}

	cmd.Flags().String(flagRpcAddr, "", "HTTP-RPC server listening address, overriding app.toml")
	cmd.Flags().String(flagWsAddr, "", "WS-RPC server listening address, overriding app.toml")
	cmd.Flags().String(flagCorsDomain, "", "comma separated list of domains from which to accept cross origin requests")
	return cmd
}
