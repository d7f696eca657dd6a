package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/cmd/app/server"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "lablens",
		Description: "The LabLens interactive blood-work explorer backend. Built with Go, fiber, bun and go.uber.org/fx. Uses PostgreSQL as row store and Redis as analysis cache.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
