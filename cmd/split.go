package cmd

import (
	"github.com/OpenPecha/wikisource-automation/internal/config"
	"github.com/OpenPecha/wikisource-automation/internal/splitter"
	"github.com/spf13/cobra"
)

var splitInputDir string
var splitOutputDir string
var splitThreshold int

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split Kagyur text files into per-section files",
	Long: `Split every .txt file in the input directory into one output file per
section token ({D1}, {D1a}, ...), renumbering page markers within each
section. Lead-in content before the first section gets its own file when it
holds at least the threshold number of meaningful lines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := splitInputDir
		if inputDir == "" {
			inputDir = config.GetInputDir()
		}
		outputDir := splitOutputDir
		if outputDir == "" {
			outputDir = config.GetOutputDir()
		}
		threshold := splitThreshold
		if threshold == 0 {
			threshold = config.GetContentThreshold()
		}

		p, err := splitter.New(splitter.Options{
			InputDir:  inputDir,
			OutputDir: outputDir,
			Threshold: threshold,
			Output:    cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}

		_, err = p.Run()
		return err
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitInputDir, "input", "i", "", "Input directory of .txt files (default from config)")
	splitCmd.Flags().StringVarP(&splitOutputDir, "output", "o", "", "Output directory for section files (default from config)")
	splitCmd.Flags().IntVarP(&splitThreshold, "threshold", "t", 0, "Meaningful lines before the first section that trigger a lead-in split (default from config)")

	rootCmd.AddCommand(splitCmd)
}
