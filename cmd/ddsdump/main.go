// Command ddsdump inspects DDS and EDDS textures and extracts frames as PNG.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/dds"
)

func main() {
	var verbose bool

	app := &cli.Command{
		Name:  "ddsdump",
		Usage: "Inspect DDS/EDDS texture containers",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log parser and decoder details", Destination: &verbose},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(&verbose),
			extractCmd(&verbose),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options builds library options with a text logger on stderr.
func options(verbose bool) *dds.Options {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return &dds.Options{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

// fileArg returns the single positional FILE argument.
func fileArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one FILE argument", cmd.Name)
	}

	return cmd.Args().First(), nil
}
