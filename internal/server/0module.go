package server

import (
	"go.uber.org/fx"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/server/httpserver"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups))
}
