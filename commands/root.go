package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-statusline/internal/analyzer"
	"github.com/penwyp/go-claude-statusline/internal/config"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/data/transcript"
	"github.com/penwyp/go-claude-statusline/internal/presentation/formatter"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// ErrInvalidHookInput means the JSON read from stdin or --input is unusable
var ErrInvalidHookInput = errors.New("invalid hook input")

// now is the clock handed to the analyzer; tests replace it
var now = time.Now

type rootFlags struct {
	// Input and data
	input    string
	dirs     []string
	timezone string

	// Output
	output           string
	contextWindow    int64
	effectiveContext bool
	noColor          bool
	width            int

	// Pricing
	pricingSource string
	pricingFile   string

	// Config and logging
	configPath string
	debug      bool
	logFile    string
	logLevel   string
	logFormat  string
}

// NewRootCommand builds the statusline command with its subcommands
func NewRootCommand() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "go-claude-statusline [flags]",
		Short: "Claude Code statusline with usage and cost",
		Long: `go-claude-statusline reads the statusline hook JSON from stdin and prints one line with
today's cost, the session cost, the active 5-hour block, its burn rate and context usage.

It scans the JSONL usage logs under <claude dir>/projects, deduplicates entries across files and
prices them with the built-in table or a local LiteLLM-format pricing file.

Examples:
  go-claude-statusline < hook.json                       # Render the statusline
  go-claude-statusline --input hook.json --output json   # Print the snapshot as JSON
  go-claude-statusline --dir ~/.claude --timezone UTC    # Use an explicit Claude directory
  go-claude-statusline blocks                            # List recent session blocks
  go-claude-statusline pricing                           # Show the active pricing table`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatusline(cmd, f)
		},
	}

	// Input and data
	cmd.Flags().StringVarP(&f.input, "input", "i", "",
		"Read hook JSON from this file instead of stdin")
	cmd.PersistentFlags().StringSliceVar(&f.dirs, "dir", nil,
		"Claude config directory containing projects/ (repeatable)")
	cmd.PersistentFlags().StringVar(&f.timezone, "timezone", "Local",
		"Timezone for the daily boundary (e.g., Asia/Shanghai, UTC)")

	// Output
	cmd.Flags().StringVarP(&f.output, "output", "o", formatter.FormatLine,
		"Output format (line, json)")
	cmd.Flags().Int64Var(&f.contextWindow, "context-window", 0,
		"Context window size in tokens (default 200000)")
	cmd.Flags().BoolVar(&f.effectiveContext, "effective-context", false,
		"Subtract reserved output and auto-compact buffer from the context window")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false,
		"Disable colors")
	cmd.Flags().IntVar(&f.width, "width", 0,
		"Maximum line width (0 = terminal width, unlimited when not a terminal)")

	// Pricing
	cmd.PersistentFlags().StringVar(&f.pricingSource, "pricing-source", pricing.SourceDefault,
		"Pricing source (default, file)")
	cmd.PersistentFlags().StringVar(&f.pricingFile, "pricing-file", "",
		"LiteLLM-format pricing JSON used with --pricing-source file")

	// Config and logging
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "",
		"Config file (default ~/.go-claude-statusline.yaml)")
	cmd.PersistentFlags().BoolVar(&f.debug, "debug", false,
		"Enable debug logging to stderr")
	cmd.PersistentFlags().StringVar(&f.logFile, "log-file", "",
		"Write logs to this file")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&f.logFormat, "log-format", string(util.FormatText),
		"Log format (text, json)")

	cmd.AddCommand(newBlocksCommand(f), newPricingCommand(f))
	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// loadSettings reads the config file and applies the flags set on the
// command line over it.
func loadSettings(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	path := f.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			util.LogDebugf("No default config path: %v", err)
		}
		path = p
	}

	cfg, err := config.Load(config.ExpandPath(path))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dirs = f.dirs
	}
	if flags.Changed("timezone") {
		cfg.Timezone = f.timezone
	}
	if flags.Changed("output") {
		cfg.Output = f.output
	}
	if flags.Changed("context-window") {
		cfg.ContextWindow = f.contextWindow
	}
	if flags.Changed("effective-context") {
		cfg.EffectiveContext = f.effectiveContext
	}
	if flags.Changed("no-color") {
		cfg.NoColor = f.noColor
	}
	if flags.Changed("width") {
		cfg.Width = f.width
	}
	if flags.Changed("pricing-source") {
		cfg.Pricing.PricingSource = f.pricingSource
	}
	if flags.Changed("pricing-file") {
		cfg.Pricing.PricingFile = f.pricingFile
	}
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}

	cfg.Pricing.PricingFile = config.ExpandPath(cfg.Pricing.PricingFile)
	return cfg, nil
}

// setup loads settings, installs the logger and resolves the timezone shared
// by every command.
func setup(cmd *cobra.Command, f *rootFlags) (*config.Config, *util.TimeProvider, error) {
	cfg, err := loadSettings(cmd, f)
	if err != nil {
		return nil, nil, err
	}

	logFile := config.ExpandPath(cfg.LogFile)
	if err := util.InitLogger(cfg.LogLevel, logFile, f.debug, util.LogFormat(cfg.LogFormat)); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	util.LogInfo("Starting",
		util.F("command", cmd.Name()),
		util.F("timezone", cfg.Timezone),
		util.F("pricing_source", cfg.Pricing.PricingSource))

	tp, err := util.NewTimeProvider(cfg.Timezone)
	if err != nil {
		err = fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		logFailure(cmd, err)
		util.CloseLogger()
		return nil, nil, err
	}
	return cfg, tp, nil
}

// logFailure records an error that ends the command
func logFailure(cmd *cobra.Command, err error) {
	if err != nil {
		util.LogErrorf("%s failed: %v", cmd.Name(), err)
	}
}

func runStatusline(cmd *cobra.Command, f *rootFlags) (err error) {
	cfg, tp, err := setup(cmd, f)
	if err != nil {
		return err
	}
	defer util.CloseLogger()
	defer func() { logFailure(cmd, err) }()

	hook, err := readHookInput(cmd.InOrStdin(), f.input)
	if err != nil {
		return err
	}
	util.LogDebugf("Hook input: session=%s transcript=%s model=%s", hook.SessionID, hook.TranscriptPath, hook.ModelName())

	provider, err := pricing.CreatePricingProvider(&cfg.Pricing)
	if err != nil {
		return fmt.Errorf("failed to create pricing provider: %w", err)
	}

	a := analyzer.New(&analyzer.Config{
		BaseDirs:       config.ResolveBaseDirs(cfg.Dirs),
		SessionID:      hook.SessionID,
		TranscriptPath: hook.TranscriptPath,
		ContextWindow:  contextWindow(cfg),
	}, provider, tp)
	a.Now = now

	snapshot, err := a.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, analyzer.ErrNoDataDirs) {
			util.LogError("No usage data directories",
				util.F("dirs", cfg.Dirs),
				util.F(config.EnvConfigDir, os.Getenv(config.EnvConfigDir)))
		}
		return err
	}

	home, _ := os.UserHomeDir()
	out, err := formatter.New(cfg.Output, cmd.OutOrStdout(), formatter.Options{
		NoColor: cfg.NoColor,
		Width:   cfg.Width,
		Home:    home,
	})
	if err != nil {
		return err
	}
	return out.Format(*hook, snapshot)
}

// readHookInput decodes the hook JSON from path, or from r when path is empty
func readHookInput(r io.Reader, path string) (*model.HookInput, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(config.ExpandPath(path))
	} else {
		data, err = io.ReadAll(r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hook input: %w", err)
	}

	var hook model.HookInput
	if err := sonic.Unmarshal(data, &hook); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHookInput, err)
	}
	if hook.SessionID == "" {
		return nil, fmt.Errorf("%w: missing session_id", ErrInvalidHookInput)
	}
	if hook.TranscriptPath == "" {
		return nil, fmt.Errorf("%w: missing transcript_path", ErrInvalidHookInput)
	}
	return &hook, nil
}

// contextWindow returns the configured window, reduced to the effective
// window when enabled.
func contextWindow(cfg *config.Config) int64 {
	window := cfg.ContextWindow
	if window <= 0 {
		window = config.Default().ContextWindow
	}
	if !cfg.EffectiveContext {
		return window
	}

	var maxOutput int64
	if v := os.Getenv(config.EnvMaxOutputTokens); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			util.LogWarnf("Ignoring %s=%q: %v", config.EnvMaxOutputTokens, v, err)
		} else {
			maxOutput = parsed
		}
	}
	return transcript.EffectiveWindow(window, maxOutput)
}
