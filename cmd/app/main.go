// Package main provides the entry point for the relay with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/vttbridge/relay/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "relay",
		Usage:   "Content relay between the D&D Beyond platform and virtual tabletops",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the relay API server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "validate-credential",
				Usage: "Check a session credential against the upstream auth service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cookie",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Session credential (CobaltSession cookie value)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunValidateCredential(
						ctx,
						cmd.String("cookie"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "source-report",
				Usage: "Fetch items and spells and print a per-source ownership breakdown",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cookie",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Session credential (CobaltSession cookie value)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSourceReport(
						ctx,
						cmd.String("cookie"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
