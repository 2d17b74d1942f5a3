package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/bookshelf/internal/config"
	"github.com/jeanpaul/bookshelf/internal/headless"
	"github.com/jeanpaul/bookshelf/internal/library"
	"github.com/jeanpaul/bookshelf/internal/logger"
	"github.com/jeanpaul/bookshelf/internal/schema"
	"github.com/jeanpaul/bookshelf/internal/tui"
	"github.com/jeanpaul/bookshelf/pkg/version"
)

func main() {
	fileFlag := flag.String("file", "", "Library file (default from config, library.txt)")
	strictFlag := flag.Bool("strict", false, "Reject library files that fail validation")
	debugFlag := flag.Bool("debug", false, "Verbose logging")
	dryRunFlag := flag.Bool("dry-run", false, "Print the diff instead of saving")
	plainFlag := flag.Bool("plain", false, "Print raw Markdown")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("bookshelf %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) > 0 && args[0] == "help" {
		showHelp()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}
	if *fileFlag != "" {
		cfg.LibraryFile = *fileFlag
	}
	cfg.StrictLoad = cfg.StrictLoad || *strictFlag
	cfg.Debug = cfg.Debug || *debugFlag

	interactive := len(args) == 0
	closeLog, err := setupLogging(cfg, interactive)
	if err != nil {
		fatal("log file: %s", err)
	}
	defer closeLog()

	validator := schema.NewValidator()
	var opts []library.LoadOption
	if cfg.StrictLoad {
		opts = append(opts, library.Strict(validator))
	}
	lib, loadErr := library.Load(cfg.LibraryFile, opts...)

	if interactive {
		launchTUI(lib, cfg.LibraryFile, loadErr)
		return
	}

	r, err := headless.New(lib, cfg.LibraryFile, headless.Options{
		Out:      os.Stdout,
		Err:      os.Stderr,
		Plain:    *plainFlag,
		DryRun:   *dryRunFlag,
		Style:    cfg.Render.Style,
		WordWrap: cfg.Render.WordWrap,
	})
	if err != nil {
		fatal("%s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runCommand(ctx, r, validator, loadErr, args); err != nil {
		closeLog()
		fatal("%s", err)
	}
}

func launchTUI(lib *library.Library, path string, loadErr error) {
	var opts []tea.ProgramOption
	if isTerminal() {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(tui.NewModel(lib, path, loadErr), opts...)
	if _, err := p.Run(); err != nil {
		fatal("TUI error: %s", err)
	}
}

// setupLogging sends logs to log_file when set. Without one, the CLI logs to stderr in
// debug mode and the TUI logs to a file in the temp dir, since stderr is the screen.
func setupLogging(cfg *config.Config, interactive bool) (func(), error) {
	path := cfg.LogFile
	if path == "" && cfg.Debug {
		if !interactive {
			logger.Setup(os.Stderr, true)
			return func() {}, nil
		}
		path = filepath.Join(os.TempDir(), "bookshelf.log")
	}
	if path == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	logger.Setup(f, cfg.Debug)
	return func() { f.Close() }, nil
}

// usableForWrite refuses to let a command overwrite a file that exists but did not load.
func usableForWrite(loadErr error) error {
	if library.SafeToOverwrite(loadErr) {
		return nil
	}
	return fmt.Errorf("library file could not be loaded, refusing to overwrite it: %w", loadErr)
}

func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	writeHelp(os.Stdout)
}

func writeHelp(w io.Writer) {
	help := `
` + tui.BannerStyle.Render("Bookshelf") + ` - a personal library in your terminal

` + tui.HeadingStyle.Render("USAGE:") + `
  bookshelf [flags]                    Open the interactive library
  bookshelf [flags] <command> [args]   Run one command and exit

` + tui.HeadingStyle.Render("COMMANDS:") + `
  add --title T --author A --year Y --genre G [--read] [--from-pdf F]
                                       Add a book and save
  remove <title>                       Remove the first book with that title and save
  search [--by title|author] <term>    Find books containing term
  list                                 Show every book
  stats                                Show reading statistics
  export [--format F] <path>           Write json, yaml, xlsx, sqlite or md
  import <glob>                        Add books from json, yaml or xlsx files and save
  diff <other-file>                    Show how the library file differs from another
  check                                Validate the library file strictly
  help                                 Show this help

` + tui.HeadingStyle.Render("FLAGS:") + `
  --file <path>                        Library file (default library.txt)
  --strict                             Reject invalid library files on load
  --dry-run                            Print the diff instead of saving
  --plain                              Print raw Markdown
  --debug                              Verbose logging
  --version                            Show version
  --help, -h                           Show this help

` + tui.HeadingStyle.Render("CONFIG:") + `
  config.yaml in the working directory or ` + config.Dir() + `
  BOOKSHELF_* environment variables, also read from .env
`
	fmt.Fprint(w, help)
}
