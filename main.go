// ABOUTME: Entry point for the cardsnap capture tool
// ABOUTME: Routes to web server, MCP server, or CLI commands based on arguments
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/harperreed/cardsnap/cli"
	"github.com/harperreed/cardsnap/config"
	"github.com/harperreed/cardsnap/db"
	"github.com/harperreed/cardsnap/extract"
	"github.com/harperreed/cardsnap/sheet"
	"github.com/harperreed/cardsnap/web"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/cardsnap/captures.db)")
	port := flag.Int("port", 8080, "Web server port (use with 'serve')")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("cardsnap version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	// GEMINI_API_KEY can live in a local .env file
	_ = godotenv.Load()

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "serve":
		database := openDatabase(*dbPath)
		defer func() { _ = database.Close() }()

		extractor := newExtractor()
		server, err := web.NewServer(database, extractor, sheet.NewClient(), settings)
		if err != nil {
			log.Fatalf("Failed to start web server: %v", err)
		}
		if err := server.Start(*port); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	case "mcp":
		database := openDatabase(*dbPath)
		defer func() { _ = database.Close() }()

		if err := cli.MCPCommand(database, newExtractor(), sheet.NewClient(), settings); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "capture":
		database := openDatabase(*dbPath)
		defer func() { _ = database.Close() }()

		if err := cli.CaptureCommand(database, newExtractor(), sheet.NewClient(), settings, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "history":
		database := openDatabase(*dbPath)
		defer func() { _ = database.Close() }()

		if len(commandArgs) == 0 {
			commandArgs = []string{"list"}
		}

		historyCommand := commandArgs[0]
		historyArgs := commandArgs[1:]

		switch historyCommand {
		case "list":
			if err := cli.HistoryListCommand(database, historyArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "show":
			if err := cli.HistoryShowCommand(database, historyArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "export":
			if err := cli.HistoryExportCommand(database, historyArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown history command: %s\n\n", historyCommand)
			printUsage()
			os.Exit(1)
		}

	case "config":
		if len(commandArgs) == 0 {
			commandArgs = []string{"show"}
		}

		configCommand := commandArgs[0]
		configArgs := commandArgs[1:]

		switch configCommand {
		case "show":
			if err := cli.ConfigShowCommand(settings); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "set-webhook":
			if err := cli.ConfigSetWebhookCommand(settings, configArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "set-view":
			if err := cli.ConfigSetViewCommand(settings, configArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "script":
			if err := cli.ConfigScriptCommand(); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown config command: %s\n\n", configCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func openDatabase(dbPath string) *sql.DB {
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	database, err := db.OpenDatabase(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return database
}

func newExtractor() extract.Extractor {
	extractor, err := extract.NewGeminiExtractor(context.Background(), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		log.Fatalf("Failed to create extractor: %v", err)
	}
	return extractor
}

func printUsage() {
	fmt.Printf(`cardsnap v%s - Contact capture for Google Sheets

USAGE:
  cardsnap [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/cardsnap/captures.db)
  --port <n>             Web server port (default: 8080, use with 'serve')

COMMANDS:
  serve                  Start the web UI at http://localhost:8080
  mcp                    Start MCP server for Claude Desktop
  capture                Capture a contact from local files
  history                Browse archived captures
  config                 Manage sheet connection settings

CAPTURE:
  cardsnap capture [flags] <files...>
    --yes                  Save without interactive review
    --no-save              Extract and print, but do not save
    Files are photos and/or one voice note, in any order.

HISTORY COMMANDS:
  cardsnap history list     List archived captures
    --query <text>            Search by name, company, or email
    --limit <n>               Max results (default: 50)

  cardsnap history show <id>   Show one capture in full

  cardsnap history export      Export captures as CSV
    --output <file>              Output file (default: stdout)
    --limit <n>                  Max captures (default: all)

CONFIG COMMANDS:
  cardsnap config show            Show current settings
  cardsnap config set-webhook <url>  Set the Apps Script web app URL
  cardsnap config set-view <url>     Set the spreadsheet viewing URL
  cardsnap config script          Print the Apps Script to install

SETUP:
  1. Create a Google Sheet and open Extensions > Apps Script
  2. Paste the output of 'cardsnap config script' and deploy as a web app
  3. Run 'cardsnap config set-webhook <web app url>'
  4. Set GEMINI_API_KEY in your environment or a .env file

EXAMPLES:
  # Capture a business card photo
  cardsnap capture card.jpg

  # Card plus a voice note, skipping the review form
  cardsnap capture --yes card.jpg note.webm

  # Start the web UI
  cardsnap serve

`, version)
}
