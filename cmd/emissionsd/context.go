package main

import (
	"os"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/trustbond/emissionsd/param"
)

var DefaultNodeHome = param.DefaultHome()

type Context struct {
	Config *param.AppConfig
	Logger log.Logger
}

func NewDefaultContext() *Context {
	return NewContext(
		param.DefaultAppConfig(),
		log.NewTMLogger(log.NewSyncWriter(os.Stdout)),
	)
}

func NewContext(config *param.AppConfig, logger log.Logger) *Context {
	return &Context{config, logger}
}
