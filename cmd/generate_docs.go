package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teemow/gdrive-upload/internal/action"
	"github.com/teemow/gdrive-upload/internal/config"
)

// inputNames lists the action inputs in documentation order.
var inputNames = []string{
	config.InputCredentials,
	config.InputParentFolderID,
	config.InputTarget,
	config.InputOwner,
	config.InputChildFolder,
	config.InputOverwrite,
	config.InputName,
	config.InputExcludeTrashedFiles,
	config.InputConcurrency,
}

func newGenerateDocsCmd() *cobra.Command {
	var (
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate action input and output documentation",
		Long: `Generate markdown documentation for the action inputs and step outputs.
The input table is built from the upload command's flags, so the documentation
stays in sync with what the upload command accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(cmd, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(cmd *cobra.Command, outputFile string) error {
	flags := pflag.NewFlagSet("inputs", pflag.ContinueOnError)
	config.BindFlags(flags)

	markdown, err := generateActionMarkdown(flags)
	if err != nil {
		return err
	}

	// Write to output
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Documentation written to: %s\n", outputFile)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
	}

	return nil
}

func generateActionMarkdown(flags *pflag.FlagSet) (string, error) {
	var sb strings.Builder

	// Header
	sb.WriteString("# Action Reference\n\n")
	sb.WriteString("Every input is read from `INPUT_<NAME>` and can also be passed to `gdrive-upload upload` as a flag.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the command definitions.\n\n")

	sb.WriteString("## Inputs\n\n")
	sb.WriteString("| Input | Flag | Required | Default | Description |\n")
	sb.WriteString("|-------|------|----------|---------|-------------|\n")
	for _, name := range inputNames {
		flag := flags.Lookup(config.FlagName(name))
		if flag == nil {
			return "", fmt.Errorf("no flag registered for input %s", name)
		}
		sb.WriteString(generateInputRow(name, flag))
	}
	sb.WriteString("\n")

	sb.WriteString("## Outputs\n\n")
	sb.WriteString("| Output | Description |\n")
	sb.WriteString("|--------|-------------|\n")
	for _, output := range action.Outputs {
		sb.WriteString(fmt.Sprintf("| `%s` | %s |\n", output.Name, output.Description))
	}

	return sb.String(), nil
}

func generateInputRow(name string, flag *pflag.Flag) string {
	requiredStr := "no"
	if slices.Contains(config.RequiredInputs, name) {
		requiredStr = "yes"
	}

	defaultStr := ""
	if flag.DefValue != "" {
		defaultStr = fmt.Sprintf("`%s`", flag.DefValue)
	}

	return fmt.Sprintf("| `%s` | `--%s` | %s | %s | %s |\n", name, flag.Name, requiredStr, defaultStr, flag.Usage)
}
