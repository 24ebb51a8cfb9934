package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/supafloof/backpacks/internal/config"
	"github.com/supafloof/backpacks/internal/errors"
	"github.com/supafloof/backpacks/internal/ops"
	"github.com/supafloof/backpacks/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(svc *ops.Service, cfg *config.Config, log *slog.Logger) *cli.App {
	app := &cli.App{
		Name:    "backpacks",
		Usage:   "Backpack storage for game servers",
		Version: Version,
		Commands: []*cli.Command{
			mintCmd(svc),
			inspectCmd(svc),
			listCmd(svc),
			sessionsCmd(svc),
			statsCmd(svc),
			purgeCmd(svc),
			webCmd(svc, cfg, log),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// mintCmd creates the mint command.
func mintCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "mint",
		Usage: "Mint a new backpack item or capacity doubler",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Value: "backpack", Usage: "Item kind: backpack|doubler"},
			&cli.StringFlag{Name: "material", Aliases: []string{"m"}, Usage: "Material for the backpack item (default from config)"},
			&cli.IntFlag{Name: "capacity", Aliases: []string{"c"}, Usage: "Slot count: 27 or 54"},
		},
		Action: func(c *cli.Context) error {
			output, err := svc.Mint(ops.MintInput{
				Kind:     c.String("kind"),
				Material: c.String("material"),
				Capacity: c.Int("capacity"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// inspectCmd creates the inspect command.
func inspectCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show one backpack's contents by identifier or fragment",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := svc.Inspect(ops.InspectInput{Query: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List known backpacks",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output := svc.List(ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			return outputJSON(output)
		},
	}
}

// sessionsCmd creates the sessions command.
func sessionsCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "List open backpack sessions",
		Action: func(_ *cli.Context) error {
			return outputJSON(svc.Sessions())
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show registry and disk totals",
		Action: func(_ *cli.Context) error {
			output, err := svc.Stats()
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Remove backpack records (closed backpacks only)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Remove this identifier's record regardless of contents"},
			&cli.IntFlag{Name: "older-than", Usage: "Only sweep empty records last written more than N days ago"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Report what would be removed without touching disk"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Actually remove records"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{
				ID:     c.String("id"),
				DryRun: c.Bool("dry-run"),
			}
			if c.IsSet("older-than") {
				days := c.Int("older-than")
				if days < 0 {
					return outputError(errors.NewInvalidRequest("--older-than must be non-negative"))
				}
				input.OlderThanDays = &days
			}

			// Dry runs are always allowed; real removal needs the explicit flag.
			if !c.Bool("yes") && !input.DryRun {
				return outputError(errors.NewInvalidRequest("pass --yes to remove records or --dry-run to preview"))
			}

			output, err := svc.Purge(input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(svc *ops.Service, cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the read-only web console",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (overrides web-addr from config)"},
		},
		Action: func(c *cli.Context) error {
			addr := cfg.WebAddr
			if a := c.String("addr"); a != "" {
				addr = a
			}
			srv := web.NewServer(svc, log, Version, addr)
			if err := web.Run(srv, log); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var bErr *errors.BackpackError
	if stderrors.As(err, &bErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", bErr.Code, bErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
