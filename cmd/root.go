package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// defaultCommand runs when the binary is started without arguments, as it is
// by the action's container entrypoint.
const defaultCommand = "upload"

// rootCmd represents the base command for the gdrive-upload application
var rootCmd = &cobra.Command{
	Use:   "gdrive-upload",
	Short: "Uploads files and directories to a Google Drive folder",
	Long: `gdrive-upload uploads a local file, or the files of a local directory, into a
Google Drive folder using a service account.

It is meant to run as a GitHub Actions step, reading its inputs from INPUT_*
environment variables and publishing folder_id, file_id, file_url and
uploaded_files as step outputs. Every input can also be given as a flag.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gdrive-upload version %s\n" .Version}}`)

	// If no subcommand is provided, run the upload command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, defaultCommand)
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
