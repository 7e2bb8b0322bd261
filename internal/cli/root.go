package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	aarogyam "github.com/sagarpathak0/aarogyam-go"
)

var (
	cfgFile     string
	sessionFile string
	jsonOut     bool
)

var rootCmd = &cobra.Command{
	Use:   "aarogyactl",
	Short: "Aarogyam hospital management CLI",
	Long: `aarogyactl talks to an Aarogyam backend: sign in, book and manage
appointments, maintain health records and FHIR resources, and register
hospitals and practitioners.

The session is stored on disk, so you sign in once and stay signed in
until you log out.

Examples:
  aarogyactl signin alice@example.com
  aarogyactl appointments book --provider 42 --date 2026-09-01 --time 10:30
  aarogyactl records get alice@example.com
  aarogyactl resources list Observation --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/aarogyam/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", aarogyam.DefaultBaseURL, "backend API base URL")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "session file (default ~/.config/aarogyam/session.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output machine-readable JSON")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	// A local .env is honored the same way the backend deployments do it.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("AAROGYAM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: could not read config: %v\n", err)
		}
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "aarogyam")
}

func sessionPath() string {
	if sessionFile != "" {
		return sessionFile
	}
	if p := viper.GetString("session_file"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "session.json")
}

// getSession opens the persisted session store.
func getSession() (*aarogyam.SessionStore, error) {
	store, err := aarogyam.OpenSessionStore(sessionPath())
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}

// getClient builds an API client carrying the current session token, if any.
func getClient() (*aarogyam.Client, *aarogyam.SessionStore, error) {
	store, err := getSession()
	if err != nil {
		return nil, nil, err
	}

	opts := []aarogyam.Option{
		aarogyam.WithBaseURL(viper.GetString("api_url")),
	}
	if token := store.Token(); token != "" {
		opts = append(opts, aarogyam.WithToken(token))
	}
	return aarogyam.NewClient(opts...), store, nil
}

// requireAuth fails the command unless a session exists, and requireAdmin
// additionally checks the stored role. Denials mirror the web surfaces:
// the message names where the caller should go instead.
func requireAuth(store *aarogyam.SessionStore) error {
	if d := aarogyam.Authorize(store, false); !d.Allowed {
		return fmt.Errorf("not signed in (run 'aarogyactl signin')")
	}
	return nil
}

func requireAdmin(store *aarogyam.SessionStore) error {
	if err := requireAuth(store); err != nil {
		return err
	}
	if d := aarogyam.Authorize(store, true); !d.Allowed {
		return fmt.Errorf("admin access required")
	}
	return nil
}
