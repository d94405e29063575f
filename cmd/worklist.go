package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenPecha/wikisource-automation/internal/config"
	"github.com/OpenPecha/wikisource-automation/internal/worklist"
	"github.com/spf13/cobra"
)

var worklistSheetID string
var worklistRange string
var worklistOutput string
var worklistDownloadDir string

var worklistCmd = &cobra.Command{
	Use:   "worklist",
	Short: "Build an upload worklist from the tracking sheet",
	Long: `Read document and wikisource links from a spreadsheet range, download
the linked text files, and write an Index,text worklist CSV for the upload
command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		builder := worklist.NewBuilder(
			worklist.NewSheetClient("", config.C.SheetsAPIKey, nil),
			worklist.NewDriveClient("", "", config.C.SheetsAPIKey, nil),
			log,
		)

		entries, err := builder.Build(cmd.Context(), worklistSheetID, worklistRange, worklistDownloadDir)
		if err != nil {
			return err
		}
		if err := worklist.WriteCSV(worklistOutput, entries); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) listed in %s\n", len(entries), worklistOutput)
		return nil
	},
}

func init() {
	worklistCmd.Flags().StringVar(&worklistSheetID, "sheet-id", "", "Spreadsheet ID holding the work items")
	worklistCmd.Flags().StringVar(&worklistRange, "range", "", "Sheet range to read (e.g. 'Sheet1!G3:K8')")
	worklistCmd.Flags().StringVar(&worklistOutput, "output", "data/work_list.csv", "Worklist CSV to write")
	worklistCmd.Flags().StringVar(&worklistDownloadDir, "download-dir", "data/text", "Directory for downloaded text files")
	worklistCmd.MarkFlagRequired("sheet-id")
	worklistCmd.MarkFlagRequired("range")

	rootCmd.AddCommand(worklistCmd)
}
