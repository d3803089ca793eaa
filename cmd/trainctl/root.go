package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"enduro/internal/config"
	"enduro/internal/store"
)

var exitStatus int

var rootCmd = &cobra.Command{
	Use:   "trainctl",
	Short: "Core CLI shell over the training repository",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("root", "", "repository root directory (default: $TRAINCTL_ROOT or ~/.trainctl)")
	rootCmd.PersistentFlags().String("config", "", "path to a viper config file overriding flag/env defaults")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.SetEnvPrefix("trainctl")
	viper.BindEnv("root")
	viper.AutomaticEnv()

	rootCmd.AddCommand(importCmd, logCmd, recomputeCmd, planCmd)
}

// openRepo resolves the repository root from --root/TRAINCTL_ROOT/config,
// falling back to ~/.trainctl, and opens it with the persisted settings'
// tunables.
func openRepo(cmd *cobra.Command) (*store.Repository, *store.Settings, error) {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, nil, store.NewError(store.KindConfigMissing, "trainctl.openRepo", cfgFile, err)
		}
	}

	root := viper.GetString("root")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, store.NewError(store.KindInternal, "trainctl.openRepo", "", err)
		}
		root = filepath.Join(home, ".trainctl")
	}

	repo, err := store.NewRepository(root, store.DefaultTunables())
	if err != nil {
		return nil, nil, err
	}

	settings, err := config.Load(repo)
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return nil, nil, err
	}

	// Reopen with the persisted tunables now that settings are known. The
	// first open above necessarily used the defaults to read the settings
	// document itself.
	repo, err = store.NewRepository(root, config.TunablesFrom(settings))
	if err != nil {
		return nil, nil, err
	}
	return repo, settings, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitStatus = emitErr(err)
	}
	os.Exit(exitStatus)
}
