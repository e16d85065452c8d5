package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/promptforge/prompt-forge/internal/api"
	"github.com/promptforge/prompt-forge/internal/cli"
	"github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/service"
	"github.com/promptforge/prompt-forge/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`prompt-forge - Terminal-based AI prompt compiler

USAGE:
    prompt-forge [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize the template library directory
    --api           Start the HTTP API server
    --port          Port for the API server (default: 8080)

COMMANDS:
    (no command)       Start interactive TUI mode
    list, ls           List catalog templates
    categories         List template categories
    search <query>     Search templates
    get, show <id>     Show a specific template
    compile <id>       Compile a template with --set key=value
    bookmarks          Manage saved prompts
    stats              Show compiler statistics
    reload             Reload the template library from disk
    help               Show CLI command help

EXAMPLES:
    prompt-forge                                       # Start interactive mode
    prompt-forge --init                                # Initialize library directory
    prompt-forge --api --port 9000                     # Start API server on port 9000
    prompt-forge list --format table                   # List templates in table format
    prompt-forge compile blog-post --set topic=휴가    # Compile with a field value
    prompt-forge help compile                          # Get detailed help

STORAGE:
    Default directory: ~/.prompt-forge
    Override with: PROMPT_FORGE_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var apiServer bool
	var port int

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize the template library directory")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&apiServer, "api", false, "Start the HTTP API server")
	flag.IntVar(&port, "port", 8080, "Port for the API server")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("prompt-forge version %s\n", version)
		os.Exit(0)
	}

	// Initialize service with file storage
	svc, err := service.NewService()
	if err != nil {
		fmt.Println(err)
		return
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Println("Error initializing library:", err)
			return
		}
		fmt.Println("Initialized Prompt Forge library")
		return
	}

	if apiServer {
		srv := api.NewAPIServer(svc, port)
		if err := srv.Start(); err != nil {
			fmt.Printf("Error starting API server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Check if we have command line arguments for CLI mode
	args := flag.Args()
	if len(args) > 0 {
		// CLI mode - execute command and exit
		cliHandler := cli.NewCLI(svc)
		var errHandler errors.ErrorHandler = errors.NewCLIErrorHandler(
			os.Getenv("VERBOSE") == "true" || os.Getenv("DEBUG") == "true")
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintln(os.Stderr, errHandler.HandleError(err))
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Println(err)
		return
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		return
	}
}
