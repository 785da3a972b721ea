package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/errors"
	"github.com/mcncl/dartyper/internal/modelgen"
	"github.com/mcncl/dartyper/internal/models"
	"github.com/mcncl/dartyper/internal/naming"
	"github.com/mcncl/dartyper/internal/output"
	"github.com/mcncl/dartyper/internal/parser"
	"github.com/mcncl/dartyper/internal/watcher"
)

// CLI defines the command-line interface
var CLI struct {
	Input      string `help:"Path to the sample JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Name       string `help:"Model base name, e.g. User. With --role=auto a Request or Response suffix selects the role." short:"n" default:"Model"`
	Role       string `help:"Model role (${enum})." short:"r" enum:"auto,request,response,none" default:"auto"`
	Config     string `help:"Path to a config file. Defaults to the nearest .dartyper.yml." short:"c" type:"path"`
	Collection string `help:"Treat the input as a model collection and group the files under this name."`
	Watch      bool   `help:"Regenerate whenever the input file changes. Requires --input." short:"w"`
	Stdout     bool   `help:"Print the generated code instead of saving it."`
	Open       bool   `help:"Open saved files in the editor named by VISUAL or EDITOR."`
	ProjectDir string `help:"Dart project root. Defaults to the nearest directory containing pubspec.yaml." type:"path"`

	NullSafety   string `help:"Override null safety: nullable, non-nullable or auto."`
	FieldCase    string `help:"Override field naming: camelCase, snake_case or preserve."`
	BaseFolder   string `help:"Override the output base folder."`
	NoSubfolders bool   `help:"Do not create a folder per model."`
	Freezed      bool   `help:"Generate @freezed classes."`
	CopyWith     bool   `help:"Generate copyWith methods."`
	Equatable    bool   `help:"Extend Equatable."`
	ToString     bool   `help:"Generate toString overrides."`
	NoFormat     bool   `help:"Skip output normalisation."`

	Debug       bool `help:"Enable debug logging." short:"d"`
	Version     bool `help:"Show version information." short:"v"`
	Interactive bool `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Stdout io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("dartyper"),
		kong.Description("A tool to generate Dart model classes from sample JSON"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("dartyper version %s\n", Version)
		return
	}

	setupLogging(CLI.Debug)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	if cfg.Dev.Debug {
		setupLogging(true)
	}

	if err := run(&Context{Debug: cfg.Dev.Debug, Config: cfg, Stdout: os.Stdout}); err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: dartyper --help\n")
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig applies CLI flags over the config file over defaults
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	if configPath != "" {
		slog.Debug("using config file", "path", configPath)
	}

	return config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		NullSafety:   CLI.NullSafety,
		FieldCase:    CLI.FieldCase,
		BaseFolder:   CLI.BaseFolder,
		NoSubfolders: CLI.NoSubfolders,
		Freezed:      CLI.Freezed,
		CopyWith:     CLI.CopyWith,
		Equatable:    CLI.Equatable,
		ToString:     CLI.ToString,
		NoFormat:     CLI.NoFormat,
		Debug:        CLI.Debug,
	})
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	writer := newWriter(ctx)

	generate := func() error {
		// 1. Parse JSON input
		ir, err := parseInput()
		if err != nil {
			return err
		}

		// 2. Generate and persist
		if CLI.Collection != "" {
			return generateCollection(ctx.Config, writer, ir)
		}
		return generateModel(ctx.Config, writer, ir)
	}

	if !CLI.Watch {
		return generate()
	}

	if CLI.Input == "" {
		return errors.NewInputError("--watch needs a file given with --input", errors.ErrNoInput)
	}
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watcher.New(CLI.Input).Run(sigCtx, generate)
}

func newWriter(ctx *Context) *output.Writer {
	w := output.NewWriter()
	w.ProjectDir = CLI.ProjectDir
	w.ForceStdout = CLI.Stdout
	if ctx.Stdout != nil {
		w.Stdout = ctx.Stdout
	}
	if CLI.Open {
		if opener := output.NewEditorOpener(); opener != nil {
			w.Opener = opener
		} else {
			slog.Warn("--open given but neither $VISUAL nor $EDITOR is set")
		}
	}
	return w
}

// resolveRole decides the role once, from the name and the --role flag
func resolveRole(name, role string) (string, models.Role, error) {
	base, suffixRole := naming.SplitRole(strings.TrimSpace(name))
	if role == "" || role == "auto" {
		return base, suffixRole, nil
	}

	r, ok := models.ParseRole(role)
	if !ok {
		return "", models.RoleNeutral, errors.NewInputError(fmt.Sprintf("unknown role %q", role), nil)
	}
	if suffixRole != r {
		base = strings.TrimSpace(name)
	}
	return base, r, nil
}

func generateModel(cfg *config.Config, w *output.Writer, ir models.IntermediateRepresentation) error {
	base, role, err := resolveRole(CLI.Name, CLI.Role)
	if err != nil {
		return err
	}

	res, err := modelgen.Generate(ir, modelgen.Options{BaseName: base, Role: role}, cfg)
	if err != nil {
		return err
	}

	outcome, err := w.Persist(output.BuildFilePath(cfg.Output, res.BaseName, res.Role), res.Code)
	if err != nil {
		return err
	}
	if outcome.Saved {
		fmt.Fprintf(os.Stderr, "Generated %s written to %s\n", res.ClassName, outcome.Path)
	}
	return nil
}

func generateCollection(cfg *config.Config, w *output.Writer, ir models.IntermediateRepresentation) error {
	out, err := modelgen.GenerateCollection(ir, cfg)
	if err != nil {
		return err
	}

	for _, e := range out.Errors {
		fmt.Fprintf(os.Stderr, "Skipped %s: %s\n", e.Name, errors.UserFriendlyError(e.Err))
	}

	saved := 0
	for _, res := range out.Results {
		path := output.BuildCollectionFilePath(cfg.Output, CLI.Collection, res.BaseName, res.Role)
		outcome, err := w.Persist(path, res.Code)
		if err != nil {
			return err
		}
		if outcome.Saved {
			saved++
			fmt.Fprintf(os.Stderr, "Generated %s written to %s\n", res.ClassName, outcome.Path)
		}
	}

	if len(out.Results) == 0 {
		return errors.NewInputError("no model in the collection could be generated", errors.ErrInvalidCollection)
	}
	fmt.Fprintf(os.Stderr, "Generated %d of %d models in the %s collection\n",
		len(out.Results), len(out.Results)+len(out.Errors), CLI.Collection)
	slog.Debug("collection done", "saved", saved, "skipped", len(out.Errors))
	return nil
}

// parseInput reads JSON from file or stdin
func parseInput() (models.IntermediateRepresentation, error) {
	if CLI.Input != "" {
		// Parse from file
		return parser.ParseFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return models.IntermediateRepresentation{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData))
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (models.IntermediateRepresentation, error) {
	fmt.Fprintln(os.Stderr, "Dartyper Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData)
}
