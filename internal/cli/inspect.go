package cli

import (
	"github.com/spf13/cobra"

	"convertd/internal/probe"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>...",
	Short: "Probe images and print their dimensions and format",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

type inspectResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	var results []inspectResult
	var firstErr error

	for _, input := range args {
		src, err := probe.File(input)
		if err != nil {
			printer.Error("%s: %v", input, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		results = append(results, inspectResult{
			Path:   src.Path,
			Width:  src.Width,
			Height: src.Height,
			Format: src.Format.String(),
		})
		printer.Printf("%s: %dx%d %s\n", src.Path, src.Width, src.Height, src.Format)
	}

	if printer.IsJSON() {
		if err := printer.JSON(results); err != nil {
			return err
		}
	}
	return firstErr
}
