package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ezvezdov/musiclib/util"
	"github.com/ezvezdov/musiclib/util/anchor"
)

var (
	tui     = anchor.New(anchor.Cyan)
	cmdRoot = &cobra.Command{
		Use:   "musiclib",
		Short: "Discover, download, tag and organize a personal music library",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// credentials (Spotify client id/secret) may live in a .env
			util.ErrSuppress(godotenv.Load())

			logFile, err := os.OpenFile(util.DataFile("musiclib.log"),
				os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			log.SetOutput(logFile)
			return nil
		},
	}
)

func Execute() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
