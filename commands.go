package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tmpe/globalconfig/lib/codec"
	"github.com/tmpe/globalconfig/lib/config"
)

func newShowCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the live global config",
		Long: `Loads the global config the same way the simulation does and prints it.
Loading may create, back up or reset the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = config.CurrentSettings().Format
			}
			out, err := codec.ByName(output)
			if err != nil {
				return err
			}
			svc, _, err := openService(nil)
			if err != nil {
				return err
			}
			data, err := out.Encode(svc.Instance())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: xml, yaml or toml (default: the file's format)")
	return cmd
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the global config with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(nil)
			if err != nil {
				return err
			}
			svc.Reset()
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s (version %d)\n",
				store.Path(store.PrimaryName()), svc.Instance().Version)
			return nil
		},
	}
}

func newReloadCmd() *cobra.Command {
	var noVersionCheck bool
	cmd := &cobra.Command{
		Use:   "reload",
		Short: "Load the global config and write it back normalized",
		Long: `Loads the global config and writes it back with every field present.
Unless --no-version-check is given, a file from an older version is backed up
and reset to defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(nil)
			if err != nil {
				return err
			}
			svc.Reload(!noVersionCheck)
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %s (version %d, modified %s)\n",
				store.Path(store.PrimaryName()), svc.Instance().Version,
				svc.ModifiedTime().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&noVersionCheck, "no-version-check", false, "accept files from older versions as they are")
	return cmd
}

func newBackupSlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup-slot",
		Short: "Print the file name the next backup would be written to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openService(nil)
			if err != nil {
				return err
			}
			slot, err := store.ResolveBackupSlot("")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path(slot))
			return nil
		},
	}
}
