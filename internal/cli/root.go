package cli

import (
	"convertd/internal/cli/output"
	"convertd/internal/config"
	"convertd/internal/version"

	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	quietMode  bool
	noColor    bool
	cfg        *config.Config
	printer    *output.Printer
)

var rootCmd = &cobra.Command{
	Use:   "cvt",
	Short: "cvt - synthesize and run ImageMagick conversions",
	Long: `cvt resolves declarative transformation options into a convert
command line and runs it, picking the WebP or MozJPEG encoder pipeline
when the host has one installed.

Get started:
  cvt convert photo.jpg -o photo.webp --width 800
  cvt convert *.jpg --out-dir thumbs --width 200 --height 200 --crop
  cvt inspect photo.jpg`,
	Version: version.Full(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		printer = output.New(
			output.WithJSON(jsonOutput),
			output.WithQuiet(quietMode),
			output.WithNoColor(noColor),
		)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && printer != nil {
		printer.Error("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVar(&quietMode, "quiet", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
}
