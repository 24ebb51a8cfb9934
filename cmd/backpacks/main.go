package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/supafloof/backpacks/internal/config"
	"github.com/supafloof/backpacks/internal/mcp"
	"github.com/supafloof/backpacks/internal/ops"
	"github.com/supafloof/backpacks/internal/storage"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"mint": true, "inspect": true, "list": true,
	"sessions": true, "stats": true, "purge": true,
	"web": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___    _     ___  _  __ ___    _     ___  _  __ ___
  | _ )  /_\   / __|| |/ /| _ \  /_\   / __|| |/ // __|
  | _ \ / _ \ | (__ | ' < |  _/ / _ \ | (__ | ' < \__ \
  |___//_/ \_\ \___||_|\_\|_|  /_/ \_\ \___||_|\_\|___/

  Backpack storage for game servers

  Usage: backpacks <command> [options]
         backpacks --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before touching the data directory
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".backpacks")

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Stdout carries JSON output or the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	for _, warning := range cfg.Normalize() {
		log.Warn("config", "warning", warning)
	}

	svc := ops.NewService(cfg, log, storage.NewStore(cfg.DataDir, log))
	if err := svc.Startup(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load backpack records: %v\n", err)
		os.Exit(1)
	}
	defer svc.Shutdown()

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(svc, cfg, log)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'backpacks --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(svc, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
