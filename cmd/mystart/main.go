package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/mystart/internal/ai"
	"github.com/nikbrunner/mystart/internal/board"
	"github.com/nikbrunner/mystart/internal/culler"
	"github.com/nikbrunner/mystart/internal/exporter"
	"github.com/nikbrunner/mystart/internal/importer"
	"github.com/nikbrunner/mystart/internal/logging"
	"github.com/nikbrunner/mystart/internal/picker"
	"github.com/nikbrunner/mystart/internal/search"
	"github.com/nikbrunner/mystart/internal/storage"
	"github.com/nikbrunner/mystart/internal/tui"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		os.Exit(1)
	}
}

// run dispatches a command. Commands return errors instead of exiting so
// that storage is closed and the log is flushed on every path.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		// No args - run full TUI
		return runTUI()
	}

	switch args[0] {
	case "help", "--help", "-h":
		printHelp()
		return nil
	case "import":
		if len(args) < 2 {
			return errors.New("missing file, usage: mystart import <file.json|file.html>")
		}
		return runImport(args[1], stdout)
	case "export":
		var outputPath string
		if len(args) >= 2 {
			outputPath = args[1]
		}
		return runExport(outputPath, stdout)
	case "cull":
		return runCull(stdin, stdout)
	default:
		// Treat as search query (join all remaining args)
		return runQuickSearch(strings.Join(args, " "), stdout)
	}
}

func printHelp() {
	help := `mystart - start page of link groups for the terminal

Usage:
  mystart                 Open interactive TUI
  mystart <query>         Quick search → select → open
  mystart import <file>   Replace the collection from JSON, or merge a bookmark HTML file
  mystart export [path]   Export the collection as JSON, or as HTML for a .html path
  mystart cull            Check every link and delete the dead ones
  mystart help            Show this help

TUI Keybindings:
  Navigation:
    h/j/k/l     Move between groups and links
    1-9, 0      Go to page 1-10
    H/L         Previous/next page

  Arranging:
    space       Grab the selected link or group, then drop it
    1-0         While moving a group, drop it on that page
    esc         Cancel the move

  Actions:
    o/Enter     Open link in browser
    Y           Copy URL to clipboard
    /           Filter the page by title or url

  Editing:
    a/A         Add link/group
    e           Edit link or rename group
    d           Delete
    s           Suggest a title (needs ANTHROPIC_API_KEY)

  Other:
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/mystart/config.json (override with $MYSTART_CONFIG)
`
	fmt.Print(help)
}

// app bundles what every command needs.
type app struct {
	cfg       *storage.Config
	logger    *zap.Logger
	store     *storage.Collections
	suggester *ai.Suggester
	board     *board.Board
}

// openApp loads the configuration and the collection.
func openApp() (*app, error) {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	logger := logging.NewOrNop(dataDir)

	collections, err := storage.Open(*cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	var backend ai.Backend
	client, err := ai.NewClient(cfg.AIModel)
	switch {
	case err == nil:
		backend = client
	case errors.Is(err, ai.ErrNoAPIKey):
		logger.Info("title suggestions disabled", zap.Error(err))
	default:
		logger.Warn("title suggestions unavailable", zap.Error(err))
	}
	suggester := ai.NewSuggester(backend, logger, cfg.SuggestTimeout())

	b := board.New(board.Params{
		Persistence: collections,
		Logger:      logger,
		Suggester:   suggester,
	})
	return &app{cfg: cfg, logger: logger, store: collections, suggester: suggester, board: b}, nil
}

// close writes the collection a last time and releases storage.
func (a *app) close() {
	if err := a.board.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving collection: %v\n", err)
	}
	if err := a.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing storage: %v\n", err)
	}
	_ = a.logger.Sync()
}

// runTUI runs the full interactive TUI.
func runTUI() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	model := tui.NewApp(tui.AppParams{
		Board:       a.board,
		Context:     ctx,
		Suggestions: a.suggester.Enabled(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running app: %w", err)
	}

	if err := a.board.SaveError(); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

// runQuickSearch performs a fuzzy search and opens or copies the chosen link.
func runQuickSearch(query string, stdout io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	results := search.FuzzySearchItems(a.board.Snapshot(), query)
	if len(results) == 0 {
		fmt.Fprintf(stdout, "No links found for '%s'\n", query)
		return nil
	}

	var (
		selected *search.SearchResult
		action   = picker.ActionOpen
	)
	if len(results) == 1 {
		// Single result - select it directly
		selected = &results[0]
	} else {
		p := picker.New(results, query)
		finalModel, err := tea.NewProgram(p).Run()
		if err != nil {
			return fmt.Errorf("running picker: %w", err)
		}
		selected, action = finalModel.(picker.Picker).Selected()
	}
	if selected == nil {
		return nil
	}

	switch action {
	case picker.ActionYank:
		if err := clipboard.WriteAll(selected.Item.URL); err != nil {
			return fmt.Errorf("copying url: %w", err)
		}
		fmt.Fprintf(stdout, "Copied: %s\n", selected.Item.URL)
	default:
		fmt.Fprintf(stdout, "Opening: %s\n", selected.Item.Title)
		if err := tui.OpenInBrowser(selected.Item.URL); err != nil {
			return fmt.Errorf("opening browser: %w", err)
		}
	}
	return nil
}

// runImport replaces the collection from a JSON export, or merges the
// folders of a bookmark HTML file into page 1.
func runImport(filePath string, stdout io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".html" || ext == ".htm" {
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("opening file: %w", err)
		}
		defer file.Close()

		groups, err := importer.ParseHTMLGroups(file, 0)
		if err != nil {
			return fmt.Errorf("parsing HTML: %w", err)
		}

		added, skipped := a.board.Merge(groups)
		if err := a.board.SaveError(); err != nil {
			return fmt.Errorf("saving collection: %w", err)
		}
		fmt.Fprintf(stdout, "Imported %d links", added)
		if skipped > 0 {
			fmt.Fprintf(stdout, " (%d duplicates skipped)", skipped)
		}
		fmt.Fprintln(stdout)
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	store, err := a.board.Import(data)
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}
	if err := a.board.SaveError(); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	fmt.Fprintf(stdout, "Imported %d groups, %d links\n", len(store.Groups), store.ItemCount())
	return nil
}

// runExport writes the collection as JSON, or as bookmark HTML when the
// path ends in .html.
func runExport(outputPath string, stdout io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if outputPath == "" {
		outputPath, err = exporter.DefaultExportPath("json")
		if err != nil {
			return fmt.Errorf("getting default export path: %w", err)
		}
	}

	store := a.board.Snapshot()
	var data []byte
	if strings.EqualFold(filepath.Ext(outputPath), ".html") {
		data = []byte(exporter.ExportHTML(store))
	} else {
		data, err = a.board.Export()
		if err != nil {
			return fmt.Errorf("encoding collection: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	fmt.Fprintf(stdout, "Exported %d groups, %d links to %s\n",
		len(store.Groups), store.ItemCount(), outputPath)
	return nil
}

// runCull checks every link and offers to delete the dead ones.
func runCull(stdin io.Reader, stdout io.Writer) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	store := a.board.Snapshot()
	total := store.ItemCount()
	if total == 0 {
		fmt.Fprintln(stdout, "No links to check")
		return nil
	}

	opts := culler.DefaultOptions(a.cfg.CullExcludeDomains)
	results := culler.CheckStore(ctx, store, opts, func(completed, total int) {
		fmt.Fprintf(stdout, "\rChecking links... %d/%d", completed, total)
	})
	fmt.Fprintln(stdout)
	if ctx.Err() != nil {
		fmt.Fprintln(stdout, "Cancelled")
		return nil
	}

	for _, r := range culler.Filter(results, culler.Unreachable) {
		fmt.Fprintf(stdout, "  ? %s (%s): %s\n", r.Item.Title, r.GroupTitle, r.Error)
	}

	dead := culler.Filter(results, culler.Dead)
	if len(dead) == 0 {
		fmt.Fprintf(stdout, "All %d links look alive\n", total)
		return nil
	}

	fmt.Fprintf(stdout, "%d dead links:\n", len(dead))
	for _, r := range dead {
		fmt.Fprintf(stdout, "  ✗ %s (%s) %d %s\n", r.Item.Title, r.GroupTitle, r.StatusCode, r.Item.URL)
	}

	fmt.Fprint(stdout, "Delete them? [y/N] ")
	answer, _ := bufio.NewReader(stdin).ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		fmt.Fprintln(stdout, "Kept all links")
		return nil
	}

	for _, r := range dead {
		a.board.DeleteItem(r.Item.ID)
	}
	if err := a.board.SaveError(); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	fmt.Fprintf(stdout, "Deleted %d links\n", len(dead))
	return nil
}
