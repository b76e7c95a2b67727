package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/todoq/internal/client"
	"github.com/slok/todoq/internal/health"
	"github.com/slok/todoq/internal/log"
	storageio "github.com/slok/todoq/internal/storage/io"
	"github.com/slok/todoq/internal/storage/sqlite"
	"github.com/slok/todoq/internal/store"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// DefaultAPIURL is the API base used when neither flag nor config file set one.
const DefaultAPIURL = "http://localhost:8080/api"

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	APIURL     string
	DBPath     string
	ConfigPath string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	app.Flag("api-url", "Base URL of the to-do API.").Envar("TODOQ_API_URL").StringVar(&c.APIURL)

	app.Flag("db-path", "Path to the SQLite state file.").Envar("TODOQ_DB_PATH").StringVar(&c.DBPath)

	defaultConfigPath := filepath.Join(homedir.HomeDir(), ".todoq", "config.yaml")
	app.Flag("config", "Path to the configuration file.").Envar("TODOQ_CONFIG").Default(defaultConfigPath).StringVar(&c.ConfigPath)

	return c
}

// appInstances groups the wired application collaborators each command needs.
type appInstances struct {
	Store   *store.Store
	Monitor *health.Monitor
	Gateway client.Gateway
	Repo    *sqlite.Repository
}

// Close releases the app resources.
func (a *appInstances) Close() error {
	return a.Repo.Close()
}

// bootstrap wires configuration, storage, transport, health monitor and the
// task store the same way for every command.
func bootstrap(ctx context.Context, rootCmd *RootCommand) (*appInstances, error) {
	logger := rootCmd.Logger

	apiURL := rootCmd.APIURL
	dbPath := rootCmd.DBPath
	slowThreshold := time.Duration(0)

	// Flags win over the config file, the config file over defaults.
	fileCfg, err := loadFileConfig(ctx, rootCmd.ConfigPath)
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		if apiURL == "" {
			apiURL = fileCfg.APIURL
		}
		if dbPath == "" {
			dbPath = fileCfg.DBPath
		}
		slowThreshold = fileCfg.SlowThreshold
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if dbPath == "" {
		dbPath = filepath.Join(homedir.HomeDir(), ".todoq", "todoq.db")
	}

	monitor, err := health.NewMonitor(health.MonitorConfig{
		SlowThreshold: slowThreshold,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create health monitor: %w", err)
	}

	gateway, err := client.NewClient(client.ClientConfig{
		BaseURL:    apiURL,
		HTTPClient: http.DefaultClient,
		Health:     monitor,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create API client: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: dbPath,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create state repository: %w", err)
	}

	st, err := store.NewStore(ctx, store.Config{
		Gateway: gateway,
		Filters: repo,
		Logger:  logger,
	})
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("could not create task store: %w", err)
	}

	return &appInstances{
		Store:   st,
		Monitor: monitor,
		Gateway: gateway,
		Repo:    repo,
	}, nil
}

// syncError surfaces the store's recorded error together with the current
// connection state, then propagates the original error.
func syncError(rootCmd *RootCommand, app *appInstances, err error) error {
	if msg := app.Store.LastError(); msg != "" {
		fmt.Fprintf(rootCmd.Stderr, "%s (connection: %s)\n", msg, app.Monitor.State())
	}
	return err
}

// loadFileConfig reads the optional configuration file. A missing file is not
// an error.
func loadFileConfig(ctx context.Context, path string) (*storageio.ClientConfig, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	loader := storageio.NewConfigYAMLRepository(os.DirFS(filepath.Dir(path)))
	cfg, err := loader.GetConfig(ctx, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("could not load config file %s: %w", path, err)
	}

	return &cfg, nil
}
