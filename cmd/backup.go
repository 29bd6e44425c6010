package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ezvezdov/musiclib/util"
)

func init() {
	cmdRoot.AddCommand(cmdBackup())
	cmdRoot.AddCommand(cmdRestore())
}

func cmdBackup() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "backup",
		Short:        "Snapshot the library's track records to a JSON file",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, err := newSession(cmd)
			if err != nil {
				return err
			}

			outDir := util.ErrWrap(run.library.Root)(cmd.Flags().GetString("output"))
			path, err := run.pipe.Backup(outDir)
			if err != nil {
				return err
			}
			tui.Printf("snapshot written to %s", path)
			return nil
		},
	}
	libraryFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Snapshot output directory (defaults to the library root)")
	return cmd
}

func cmdRestore() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "restore <snapshot>",
		Short:        "Rebuild the library from a backup snapshot",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := newSession(cmd)
			if err != nil {
				return err
			}

			tui.Anchorf("restoring %s", args[0])
			if err := run.pipe.Restore(cmd.Context(), args[0]); err != nil {
				return err
			}
			tui.Wipe()
			tui.Printf("restore complete")
			return nil
		},
	}
	libraryFlags(cmd)
	return cmd
}
