package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ldisk/gatehouse/cmd/gatehouse/account"
	"github.com/ldisk/gatehouse/cmd/gatehouse/serve"
	"github.com/ldisk/gatehouse/internal/logutil"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	verbose := false
	app := &cli.App{
		Name:  "gatehouse",
		Usage: "Serve static content and keep the private side behind a login",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Enable debug logging",
				Destination: &verbose,
			},
		},
		Before: func(*cli.Context) error {
			logutil.Setup(verbose)
			return nil
		},
		Commands: []*cli.Command{
			serve.Cmd(),
			account.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
