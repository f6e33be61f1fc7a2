package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmpe/globalconfig/lib/codec"
	"github.com/tmpe/globalconfig/lib/config"
	"github.com/tmpe/globalconfig/lib/lifecycle"
	"github.com/tmpe/globalconfig/lib/storage"
	"github.com/tmpe/globalconfig/lib/util/logger"
)

var log = logger.GetLogger()

var (
	// Version is set at build time
	Version = "dev"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmpe-config",
		Short: "Manage the TM:PE global configuration file",
		Long: `tmpe-config loads, migrates and maintains TMPE_GlobalConfig.xml.

A missing or unreadable file is replaced by defaults. A file written by an
older version is backed up to TMPE_GlobalConfig.xml.bak (or the next free
.bak.N) and reset to defaults.

  tmpe-config show                # print the live config
  tmpe-config reset               # overwrite the file with defaults
  tmpe-config watch --diagnostic  # pick up external edits while running`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitConfig(); err != nil {
				return err
			}
			// bound after InitConfig so a freshly created settings file only
			// holds defaults
			bindFlags(cmd)
			settings := config.CurrentSettings()
			if settings.LogLevel != "" {
				logger.SetLevel(settings.LogLevel)
			}
			log.WithFields(logger.Fields{
				"data_dir": settings.DataDir,
				"format":   settings.Format,
				"polling":  settings.PollingEnabled,
			}).Debug("tmpe-config starting")
			return settings.Validate()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&config.CfgFile, "config", "", "settings file (default $HOME/.tmpe/config.yaml)")
	flags.String("dir", "", "directory holding the global config file")
	flags.String("format", "", "global config format: xml, yaml or toml")
	flags.Bool("diagnostic", false, "reload the global config when it is edited externally")

	rootCmd.AddCommand(
		newShowCmd(),
		newResetCmd(),
		newReloadCmd(),
		newBackupSlotCmd(),
		newWatchCmd(),
	)
	return rootCmd
}

// bindFlags ties the persistent flags to their viper keys. Unset flags leave
// the settings file and defaults in charge.
func bindFlags(cmd *cobra.Command) {
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		"data_dir":                    "dir",
		"global_config.format":        "format",
		"diagnostics.polling_enabled": "diagnostic",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			log.WithError(err).WithField("flag", name).Warn("Could not bind flag")
		}
	}
}

// openService builds the lifecycle service described by the current settings.
func openService(ticks lifecycle.TickSource) (*lifecycle.Service, *storage.Store, error) {
	settings := config.CurrentSettings()
	c, err := codec.ByName(settings.Format)
	if err != nil {
		return nil, nil, err
	}
	store := storage.New(settings.StorageOptions())
	svc := lifecycle.New(lifecycle.Options{
		Storage:           store,
		Codec:             c,
		Ticks:             ticks,
		DiagnosticPolling: settings.PollingEnabled,
		TickShift:         settings.TickShift,
	})
	return svc, store, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("tmpe-config failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
