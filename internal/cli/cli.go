package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/promptforge/prompt-forge/internal/clipboard"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/service"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "list", "ls":
		return c.listTemplates(commandArgs)
	case "categories":
		return c.listCategories(commandArgs)
	case "search":
		return c.searchTemplates(commandArgs)
	case "get", "show":
		return c.showTemplate(commandArgs)
	case "compile":
		return c.compileTemplate(commandArgs)
	case "bookmarks":
		return c.handleBookmarks(commandArgs)
	case "stats":
		return c.showStats(commandArgs)
	case "reload":
		return c.reloadLibrary()
	case "help":
		return c.printHelp(commandArgs)
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

// listTemplates lists catalog templates
func (c *CLI) listTemplates(args []string) error {
	var format string
	var category string

	// Parse flags
	for i, arg := range args {
		switch arg {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
			}
		case "--category", "-c":
			if i+1 < len(args) {
				category = args[i+1]
			}
		}
	}

	var templates []*models.Template
	if category != "" {
		templates = c.service.ListTemplatesByCategory(category)
	} else {
		templates = c.service.ListTemplates()
	}

	return c.formatOutput(templates, format)
}

// listCategories lists the distinct template categories
func (c *CLI) listCategories(args []string) error {
	var format string
	for i, arg := range args {
		if arg == "--format" || arg == "-f" {
			if i+1 < len(args) {
				format = args[i+1]
			}
		}
	}

	categories := c.service.Categories()
	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(categories)
	}
	for _, category := range categories {
		fmt.Println(category)
	}
	return nil
}

// searchTemplates searches templates by query string
func (c *CLI) searchTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}

	var format string
	var queryParts []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		default:
			queryParts = append(queryParts, args[i])
		}
	}

	templates := c.service.SearchTemplates(strings.Join(queryParts, " "))
	return c.formatOutput(templates, format)
}

// showTemplate displays a specific template
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a template ID")
	}

	var format string
	for i, arg := range args {
		if arg == "--format" || arg == "-f" {
			if i+1 < len(args) {
				format = args[i+1]
			}
		}
	}

	template, err := c.service.GetTemplate(args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	return c.formatSingleTemplate(template, format)
}

// compileTemplate compiles a template against --set selections
func (c *CLI) compileTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("compile requires a template ID")
	}

	templateID := args[0]
	selections := make(map[string]string)
	var format string
	var copyResult bool
	var bookmarkTitle string

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--set", "-s":
			if i+1 < len(args) {
				key, value, found := strings.Cut(args[i+1], "=")
				if !found {
					return fmt.Errorf("--set expects key=value, got %q", args[i+1])
				}
				selections[key] = value
				i++
			}
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--copy":
			copyResult = true
		case "--bookmark":
			if i+1 < len(args) {
				bookmarkTitle = args[i+1]
				i++
			}
		}
	}

	result, err := c.service.Compile(templateID, selections)
	if err != nil {
		return fmt.Errorf("failed to compile: %w", err)
	}

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	if !result.Success {
		return fmt.Errorf("compilation failed: %s", result.Error)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	fmt.Println(result.Content)

	if copyResult {
		if msg, err := clipboard.CopyWithFallback(result.Content); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, msg)
		}
	}

	if bookmarkTitle != "" {
		bookmark := &models.Bookmark{
			Title:       bookmarkTitle,
			TemplateID:  templateID,
			FinalPrompt: result.Content,
			Selections:  selections,
		}
		if err := c.service.SaveBookmark(bookmark); err != nil {
			return fmt.Errorf("failed to save bookmark: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved bookmark %s\n", bookmark.ID)
	}

	return nil
}

// handleBookmarks handles bookmark subcommands
func (c *CLI) handleBookmarks(args []string) error {
	if len(args) == 0 {
		return c.listBookmarks("")
	}

	subcommand := args[0]
	switch subcommand {
	case "list", "ls":
		var format string
		for i, arg := range args[1:] {
			if arg == "--format" || arg == "-f" {
				if i+2 < len(args) {
					format = args[i+2]
				}
			}
		}
		return c.listBookmarks(format)
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("bookmarks show requires a bookmark ID")
		}
		bookmark, err := c.service.GetBookmark(args[1])
		if err != nil {
			return fmt.Errorf("failed to get bookmark: %w", err)
		}
		fmt.Printf("ID: %s\n", bookmark.ID)
		fmt.Printf("Title: %s\n", bookmark.Title)
		fmt.Printf("Template: %s\n", bookmark.TemplateID)
		fmt.Printf("Created: %s\n", bookmark.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("\n%s\n", bookmark.FinalPrompt)
		return nil
	case "copy":
		if len(args) < 2 {
			return fmt.Errorf("bookmarks copy requires a bookmark ID")
		}
		bookmark, err := c.service.GetBookmark(args[1])
		if err != nil {
			return fmt.Errorf("failed to get bookmark: %w", err)
		}
		msg, err := clipboard.CopyWithFallback(bookmark.FinalPrompt)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	case "delete", "rm":
		if len(args) < 2 {
			return fmt.Errorf("bookmarks delete requires a bookmark ID")
		}
		if err := c.service.DeleteBookmark(args[1]); err != nil {
			return fmt.Errorf("failed to delete bookmark: %w", err)
		}
		fmt.Printf("Deleted bookmark %s\n", args[1])
		return nil
	default:
		return fmt.Errorf("unknown bookmarks subcommand: %s", subcommand)
	}
}

func (c *CLI) listBookmarks(format string) error {
	bookmarks, err := c.service.ListBookmarks()
	if err != nil {
		return fmt.Errorf("failed to list bookmarks: %w", err)
	}

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(bookmarks)
	}

	for _, bm := range bookmarks {
		fmt.Printf("%s - %s\n", bm.ID, bm.Title)
		fmt.Printf("  Template: %s, saved %s\n", bm.TemplateID, bm.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// showStats prints compiler counters and cache effectiveness
func (c *CLI) showStats(args []string) error {
	var format string
	for i, arg := range args {
		if arg == "--format" || arg == "-f" {
			if i+1 < len(args) {
				format = args[i+1]
			}
		}
	}

	stats := c.service.CompilerStats()
	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}

	fmt.Printf("Compilations: %d (%d ok, %d failed)\n", stats.Total, stats.Successful, stats.Failed)
	fmt.Printf("Cache: %d entries, %d hits (%.0f%% hit rate)\n",
		stats.CacheSize, stats.CacheHits, stats.HitRate*100)
	return nil
}

func (c *CLI) reloadLibrary() error {
	if err := c.service.ReloadLibrary(); err != nil {
		return fmt.Errorf("failed to reload library: %w", err)
	}
	fmt.Println("Library reloaded")
	return nil
}

// formatOutput formats a template list for output
func (c *CLI) formatOutput(templates []*models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(templates)
	case "ids":
		for _, t := range templates {
			fmt.Println(t.ID)
		}
	case "table":
		fmt.Printf("%-20s %-30s %s\n", "ID", "Name", "Category")
		fmt.Println(strings.Repeat("-", 70))
		for _, t := range templates {
			name := t.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			fmt.Printf("%-20s %-30s %s\n", t.ID, name, t.Category)
		}
	default:
		for _, t := range templates {
			fmt.Printf("%s - %s\n", t.ID, t.Name)
			if t.Summary != "" {
				fmt.Printf("  %s\n", t.Summary)
			}
			if t.Category != "" {
				fmt.Printf("  Category: %s\n", t.Category)
			}
			fmt.Println()
		}
	}
	return nil
}

// formatSingleTemplate formats a single template for output
func (c *CLI) formatSingleTemplate(template *models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(template)
	default:
		fmt.Printf("ID: %s\n", template.ID)
		fmt.Printf("Name: %s\n", template.Name)
		fmt.Printf("Category: %s\n", template.Category)
		if template.Summary != "" {
			fmt.Printf("Description: %s\n", template.Summary)
		}
		if len(template.Fields) > 0 {
			fmt.Println("Fields:")
			for _, field := range template.Fields {
				line := fmt.Sprintf("  %s (%s)", field.Key, field.Kind)
				if field.Required {
					line += " required"
				}
				if field.Default != "" {
					line += fmt.Sprintf(" default=%q", field.Default)
				}
				if len(field.Options) > 0 {
					line += fmt.Sprintf(" options=[%s]", strings.Join(field.Options, ", "))
				}
				fmt.Println(line)
			}
		}
		if template.Limits.Max > 0 || template.Limits.Min > 0 {
			fmt.Printf("Limits: max=%d min=%d\n", template.Limits.Max, template.Limits.Min)
		}
		fmt.Printf("\nBody:\n%s\n", template.Body)
	}
	return nil
}

func (c *CLI) printUsage() error {
	fmt.Println(`prompt-forge - Headless CLI mode

Usage: prompt-forge <command> [options]

Commands:
  list, ls              List catalog templates
  categories            List template categories
  search <query>        Search templates
  get, show <id>        Show a specific template
  compile <id>          Compile a template with --set key=value
  bookmarks             Manage saved prompts (list, show, copy, delete)
  stats                 Show compiler statistics
  reload                Reload the template library from disk
  help                  Show help

Use 'prompt-forge help <command>' for detailed help on a specific command.`)
	return nil
}

func (c *CLI) printHelp(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	switch command {
	case "list", "ls":
		fmt.Println(`list - List catalog templates

Usage: prompt-forge list [options]

Options:
  --format, -f <format>    Output format (table, json, ids, default)
  --category, -c <name>    Filter by category`)

	case "search":
		fmt.Println(`search - Search templates

Usage: prompt-forge search <query> [options]

Options:
  --format, -f <format>  Output format (table, json, ids, default)

Example:
  prompt-forge search "블로그"`)

	case "compile":
		fmt.Println(`compile - Compile a template into a final prompt

Usage: prompt-forge compile <id> [options]

Options:
  --set, -s <key=value>  Set a field value (repeatable)
  --format, -f json      Emit the full result object as JSON
  --copy                 Copy the compiled prompt to the clipboard
  --bookmark <title>     Save the compiled prompt as a bookmark

Example:
  prompt-forge compile blog-post --set topic="AI 도구 활용법" --set tone=친근한`)

	case "bookmarks":
		fmt.Println(`bookmarks - Manage saved prompts

Usage: prompt-forge bookmarks <subcommand> [options]

Subcommands:
  list            List all bookmarks
  show <id>       Show a bookmark with its prompt
  copy <id>       Copy a bookmark's prompt to the clipboard
  delete <id>     Delete a bookmark`)

	default:
		return c.printUsage()
	}
	return nil
}
