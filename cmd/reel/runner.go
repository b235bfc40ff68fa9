package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/adapter/source"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/kv"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/store"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	opts RunnerOpts

	config   *adapter.Config
	store    *store.Store
	catalog  *service.CatalogService // nil without catalog credentials
	curation *service.CurationService
	session  *service.SessionService
	launcher *adapter.Launcher
	logger   *slog.Logger

	output       io.Writer
	readPassword func(prompt string) (string, error)
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config       *adapter.Config
	Catalog      domain.CatalogRepository // nil without catalog credentials
	Backend      kv.Backend               // nil disables persistence
	Logger       *slog.Logger
	Output       io.Writer
	ReadPassword func(prompt string) (string, error)
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	r := &Runner{}
	r.configure(opts)
	return r
}

func (r *Runner) configure(opts RunnerOpts) {
	if opts.Config == nil {
		opts.Config = adapter.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = adapter.NullLogger()
	}
	if opts.Output == nil {
		opts.Output = r.output
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ReadPassword == nil {
		opts.ReadPassword = r.readPassword
	}
	if opts.ReadPassword == nil {
		opts.ReadPassword = promptPassword
	}
	r.opts = opts

	cfg := opts.Config
	r.config = cfg
	r.logger = opts.Logger
	r.output = opts.Output
	r.readPassword = opts.ReadPassword

	r.store = store.New(opts.Backend,
		store.WithSessionTTL(cfg.Admin.SessionTTL),
		store.WithLogger(opts.Logger),
	)
	r.session = service.NewSessionService(r.store, service.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	}, opts.Logger)
	r.curation = service.NewCurationService(r.store, opts.Catalog, r.session, opts.Logger)
	r.catalog = nil
	if opts.Catalog != nil {
		r.catalog = service.NewCatalogService(opts.Catalog, r.store, opts.Logger)
	}
	r.launcher = adapter.NewLauncher(&cfg.UI, opts.Logger)
}

// SetLogger swaps the logger used by every service
func (r *Runner) SetLogger(logger *slog.Logger) {
	opts := r.opts
	opts.Logger = logger
	r.configure(opts)
}

// Setup loads the configuration and opens the store and catalog before any command runs
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := adapter.LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	backend, err := kv.Open(cfg.Store.KVOptions())
	if err != nil {
		// The store runs without persistence rather than failing the command
		logger.Warn("curation store unavailable", "backend", cfg.Store.Backend, "error", err)
		backend = nil
	}

	catalog, err := source.NewCatalogFromConfig(cfg, logger)
	if err != nil {
		logger.Debug("catalog not configured", "error", err)
		catalog = nil
	}

	r.configure(RunnerOpts{
		Config:  cfg,
		Catalog: catalog,
		Backend: backend,
		Logger:  logger,
	})
	return ctx, nil
}

// Close releases the store backend
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		loginCommand, logoutCommand, whoamiCommand, featuredCommand, statsCommand,
		viewCommand, searchCommand, discoverCommand, trendingCommand, genresCommand,
		hashPasswordCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) requireCatalog() error {
	if r.catalog == nil {
		return fmt.Errorf("%w: set tmdb.api_key in the config file or REEL_TMDB_API_KEY", adapter.ErrMissingCredentials)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// kindAndID reads the <kind> <id> argument pair
func kindAndID(cmd *cli.Command) (domain.Kind, int, error) {
	kind, err := domain.ParseKind(cmd.StringArg("kind"))
	if err != nil {
		return "", 0, err
	}
	raw := cmd.StringArg("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return kind, id, nil
}

// optionalKind parses --kind, returning nil when unset
func optionalKind(cmd *cli.Command) (*domain.Kind, error) {
	raw := cmd.String("kind")
	if raw == "" {
		return nil, nil
	}
	kind, err := domain.ParseKind(raw)
	if err != nil {
		return nil, err
	}
	return &kind, nil
}

// promptPassword reads a password without echo when stdin is a terminal
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}
