package rpc

import (
	"net"
	"net/http"
	"strings"

	tmlog "github.com/tendermint/tendermint/libs/log"
	tmservice "github.com/tendermint/tendermint/libs/service"
	tmrpcserver "github.com/tendermint/tendermint/rpc/jsonrpc/server"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/cors"

	sbapi "github.com/trustbond/emissionsd/api"
	rpcapi "github.com/trustbond/emissionsd/rpc/api"
)

var _ tmservice.Service = (*Server)(nil)

// serve JSON-RPC over HTTP & WebSocket
type Server struct {
	tmservice.BaseService

	rpcAddr    string // listen address of rest-server
	wsAddr     string // listen address of ws server
	corsDomain string

	logger  tmlog.Logger
	backend sbapi.BackendService

	httpServer   *gethrpc.Server
	httpListener net.Listener
	wsServer     *gethrpc.Server
	wsListener   net.Listener

	certFile, keyFile string

	adminToken string
}

func NewServer(rpcAddr, wsAddr, corsDomain string,
	backend sbapi.BackendService, certFile, keyFile string,
	logger tmlog.Logger, adminToken string) tmservice.Service {

	impl := &Server{
		rpcAddr:    rpcAddr,
		wsAddr:     wsAddr,
		corsDomain: corsDomain,
		backend:    backend,
		logger:     logger,
		certFile:   certFile,
		keyFile:    keyFile,
		adminToken: adminToken,
	}
	return tmservice.NewBaseService(logger, "json-rpc", impl)
}

func (server *Server) OnStart() error {
	apis := rpcapi.GetAPIs(server.backend, server.logger, server.adminToken)
	if err := server.startHTTP(apis); err != nil {
		return err
	}
	return server.startWS(apis)
}

func (server *Server) startHTTP(apis []gethrpc.API) (err error) {
	server.httpServer = gethrpc.NewServer()
	if err = registerApis(server.httpServer, apis); err != nil {
		return err
	}

	server.httpListener, err = tmrpcserver.Listen(
		server.rpcAddr, tmrpcserver.DefaultConfig())
	if err != nil {
		return err
	}

	handler := newCorsHandler(server.httpServer, server.allowedOrigins())
	if server.certFile != "" && server.keyFile != "" {
		go func() {
			_ = tmrpcserver.ServeTLS(server.httpListener, handler,
				server.certFile, server.keyFile, server.logger, tmrpcserver.DefaultConfig())
		}()
		return nil
	}
	go func() {
		_ = tmrpcserver.Serve(server.httpListener, handler, server.logger,
			tmrpcserver.DefaultConfig())
	}()
	return nil
}

func (server *Server) startWS(apis []gethrpc.API) (err error) {
	server.wsServer = gethrpc.NewServer()
	if err = registerApis(server.wsServer, apis); err != nil {
		return err
	}

	server.wsListener, err = tmrpcserver.Listen(
		server.wsAddr, tmrpcserver.DefaultConfig())
	if err != nil {
		return err
	}

	wsh := server.wsServer.WebsocketHandler(server.allowedOrigins())
	if server.certFile != "" && server.keyFile != "" {
		go func() {
			_ = tmrpcserver.ServeTLS(server.wsListener, wsh,
				server.certFile, server.keyFile, server.logger, tmrpcserver.DefaultConfig())
		}()
		return nil
	}
	go func() {
		_ = tmrpcserver.Serve(server.wsListener, wsh, server.logger,
			tmrpcserver.DefaultConfig())
	}()
	return nil
}

func (server *Server) allowedOrigins() []string {
	if server.corsDomain == "" {
		return nil
	}
	return strings.Split(server.corsDomain, ",")
}

func (server *Server) OnStop() {
	server.stopHTTP()
	server.stopWS()
}

func (server *Server) stopHTTP() {
	if server.httpServer != nil {
		server.httpServer.Stop()
	}
	if server.httpListener != nil {
		_ = server.httpListener.Close()
	}
}

func (server *Server) stopWS() {
	if server.wsServer != nil {
		server.wsServer.Stop()
	}
	if server.wsListener != nil {
		_ = server.wsListener.Close()
	}
}

func registerApis(rpcServer *gethrpc.Server, apis []gethrpc.API) error {
	for _, _api := range apis {
		if err := rpcServer.RegisterName(_api.Namespace, _api.Service); err != nil {
			return err
		}
	}
	return nil
}

func newCorsHandler(srv http.Handler, allowedOrigins []string) http.Handler {
	// disable CORS support if user has not specified a custom CORS configuration
	if len(allowedOrigins) == 0 {
		return srv
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	})
	return c.Handler(srv)
}
