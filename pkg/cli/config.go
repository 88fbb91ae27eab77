package cli

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/adapter"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// config holds configuration values
type config struct {
	backendURL     string
	llmEndpoint    string
	nl2sqlEndpoint string
	restaurantID   int64

	prefsPath string
	logLevel  string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Aliases:     []string{"b"},
			Usage:       "Base URL of the inventory REST API",
			Value:       "http://localhost:5000",
			Sources:     cli.EnvVars("LARDER_BACKEND_URL"),
			Destination: &cfg.backendURL,
		},
		&cli.IntFlag{
			Name:        "restaurant-id",
			Usage:       "Restaurant to operate on",
			Value:       1,
			Sources:     cli.EnvVars("LARDER_RESTAURANT_ID"),
			Destination: &cfg.restaurantID,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("LARDER_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "prefs",
			Usage:       "Path to the preference file",
			Sources:     cli.EnvVars("LARDER_PREFS"),
			Destination: &cfg.prefsPath,
		},
	}
}

// llmFlags returns flags for the two language-model endpoints
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-endpoint",
			Usage:       "URL of the general-purpose LLM generate endpoint",
			Value:       "http://localhost:11434/api/generate",
			Sources:     cli.EnvVars("LARDER_LLM_ENDPOINT"),
			Destination: &cfg.llmEndpoint,
		},
		&cli.StringFlag{
			Name:        "nl2sql-endpoint",
			Usage:       "URL of the NL to SQL translation endpoint",
			Value:       "http://localhost:5000/api/nl2sql",
			Sources:     cli.EnvVars("LARDER_NL2SQL_ENDPOINT"),
			Destination: &cfg.nl2sqlEndpoint,
		},
	}
}

// newLLM creates the general-purpose LLM adapter
func (cfg *config) newLLM() (adapter.LLM, error) {
	if cfg.llmEndpoint == "" {
		return nil, goerr.New("llm-endpoint is required")
	}
	return adapter.NewLLM(cfg.llmEndpoint), nil
}

// newTranslator creates the NL→SQL adapter
func (cfg *config) newTranslator() (adapter.Translator, error) {
	if cfg.nl2sqlEndpoint == "" {
		return nil, goerr.New("nl2sql-endpoint is required")
	}
	return adapter.NewTranslator(cfg.nl2sqlEndpoint), nil
}

// newInventoryAPI creates the Data-Access Client
func (cfg *config) newInventoryAPI() (adapter.InventoryAPI, error) {
	if cfg.backendURL == "" {
		return nil, goerr.New("backend-url is required")
	}
	return adapter.NewInventoryAPI(cfg.backendURL, adapter.WithRestaurantID(cfg.restaurantID)), nil
}

// preferences is the small client-side preference file. The explanation
// template is the only persisted piece of session state; it affects phrasing
// only.
type preferences struct {
	ExplainTemplate string `yaml:"explain_template"`
}

func (cfg *config) preferencesPath() (string, error) {
	if cfg.prefsPath != "" {
		return cfg.prefsPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, ".config", "larder", "prefs.yml"), nil
}

// loadPreferences reads the preference file. A missing file yields zero-value
// preferences.
func (cfg *config) loadPreferences() (*preferences, error) {
	path, err := cfg.preferencesPath()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &preferences{}, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read preference file", goerr.Value("path", path))
	}

	var prefs preferences
	if err := yaml.Unmarshal(raw, &prefs); err != nil {
		return nil, goerr.Wrap(err, "failed to parse preference file", goerr.Value("path", path))
	}
	return &prefs, nil
}

func (cfg *config) savePreferences(prefs *preferences) error {
	path, err := cfg.preferencesPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create preference directory")
	}

	raw, err := yaml.Marshal(prefs)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal preferences")
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write preference file", goerr.Value("path", path))
	}
	return nil
}
