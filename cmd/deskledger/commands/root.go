// Package commands wires the deskledger CLI. It is thin glue: every rule
// lives in the bank and library packages, the commands only parse input and
// print results.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"deskledger/library"
)

func Execute() error {
	root := &cobra.Command{
		Use:           "deskledger",
		Short:         "Front-desk ledgers: bank accounts and library circulation",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("data-dir", "", "data directory (default ~/.deskledger)")
	root.PersistentFlags().String("store", "sqlite", "storage backend: sqlite or json")
	root.PersistentFlags().BoolP("verbose", "v", false, "log operations to stderr")

	cobra.OnInitialize(func() {
		viper.SetEnvPrefix("DESKLEDGER")
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		viper.AutomaticEnv()

		if dir := viper.GetString("data-dir"); dir != "" {
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
			viper.AddConfigPath(dir)
			_ = viper.ReadInConfig()
		}
	})
	if err := viper.BindPFlags(root.PersistentFlags()); err != nil {
		return err
	}

	root.AddCommand(bankCmd(), libraryCmd())
	return root.Execute()
}

// dataDir resolves the configured data directory, creating it if needed.
func dataDir() (string, error) {
	dir := viper.GetString("data-dir")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".deskledger")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// newLogger builds the operation logger: development output when verbose,
// otherwise a nop.
func newLogger() (*zap.Logger, error) {
	if !viper.GetBool("verbose") {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openStore builds the configured snapshot store. The returned closer is a
// no-op for backends without a connection to release.
func openStore() (library.Store, func() error, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, nil, err
	}

	switch backend := viper.GetString("store"); backend {
	case "sqlite":
		store, err := library.NewSQLiteStore(filepath.Join(dir, "library.db"))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "json":
		store, err := library.NewJSONStore(dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (want sqlite or json)", backend)
	}
}
