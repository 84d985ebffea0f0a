package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"snnd/internal/backend"
	"snnd/internal/config"
	"snnd/internal/httpapi"
	"snnd/internal/journal"
	"snnd/internal/service"
	"snnd/internal/tui"
)

// options holds flag values; flags override the config file when set.
type options struct {
	configPath  string
	logLevel    string
	addr        string
	assetsDir   string
	applyDelay  string
	journalPath string
	corsOrigins string
	noShader    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command { return newRootCmdWith(&options{}) }

// newRootCmdWith builds the command tree with flags bound to opts.
func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "snnd",
		Short:         "Model selection daemon for on-device neural network demos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("SNND_CONFIG"), "Config file (.yaml, .yml, .json, .toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (default from config or info)")
	root.PersistentFlags().StringVar(&opts.assetsDir, "assets-dir", "", "Directory holding model asset files")
	root.PersistentFlags().StringVar(&opts.applyDelay, "apply-delay", "", "Simulated backend reconfiguration latency, e.g. 750ms")
	root.PersistentFlags().StringVar(&opts.journalPath, "journal", "", "SQLite event journal path (empty disables)")
	root.PersistentFlags().BoolVar(&opts.noShader, "no-shader-choice", false, "Hide the compute/fragment shader options")

	serve := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  snnd serve --addr :8080 --assets-dir ~/snn/assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
	defaultAddr := ""
	if v := os.Getenv("SNND_ADDR"); v != "" {
		defaultAddr = v
	}
	serve.Flags().StringVar(&opts.addr, "addr", defaultAddr, "HTTP listen address (default :8080)")
	serve.Flags().StringVar(&opts.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins; enables CORS")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "Drive the selection menu from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runMenu(cfg)
		},
	}

	root.AddCommand(serve, menuCmd)
	return root
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		c, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	flags := cmd.Flags()
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if flags.Changed("assets-dir") {
		cfg.AssetsDir = opts.assetsDir
	}
	if flags.Changed("apply-delay") {
		cfg.ApplyDelay = opts.applyDelay
	}
	if flags.Changed("journal") {
		cfg.JournalPath = opts.journalPath
	}
	if flags.Changed("no-shader-choice") {
		on := !opts.noShader
		cfg.ShaderChoice = &on
	}
	if origins := splitCSV(opts.corsOrigins); len(origins) > 0 {
		cfg.CORS.Enabled = true
		cfg.CORS.AllowedOrigins = origins
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var l zerolog.Logger
	if cfg.LogFormat == "json" {
		l = zerolog.New(os.Stderr)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return l.Level(lvl).With().Timestamp().Str("svc", "snnd").Logger()
}

// newService builds the simulated backend, the optional journal and the service.
func newService(cfg config.Config, log zerolog.Logger) (*service.Service, error) {
	delay, err := cfg.ApplyDelayDuration()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.ApplyTimeoutDuration()
	if err != nil {
		return nil, err
	}
	var j *journal.Journal
	if cfg.JournalPath != "" {
		j, err = journal.Open(cfg.JournalPath, log)
		if err != nil {
			return nil, err
		}
	}
	svc, err := service.New(service.Options{
		Backend:          backend.NewSimulated(delay),
		Labels:           cfg.Labels,
		AssetsDir:        cfg.AssetsDir,
		HideShaderChoice: !cfg.ShaderChoiceEnabled(),
		ApplyTimeout:     timeout,
		Journal:          j,
		Logger:           log,
	})
	if err != nil {
		if j != nil {
			_ = j.Close()
		}
		return nil, err
	}
	return svc, nil
}

func runServe(cfg config.Config) error {
	log := newLogger(cfg)
	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetMutationRateLimit(cfg.SelectRatePerSec, cfg.SelectBurst)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(svc), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("assets_dir", cfg.AssetsDir).Msg("snnd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = svc.Close(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	if err := svc.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("service close")
	}
	log.Info().Msg("snnd stopped")
	return nil
}

func runMenu(cfg config.Config) error {
	// The terminal belongs to the menu; logs only go to the journal.
	svc, err := newService(cfg, zerolog.Nop())
	if err != nil {
		return err
	}
	defer svc.Close(context.Background())
	_, err = tea.NewProgram(tui.New(svc), tea.WithAltScreen()).Run()
	return err
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
