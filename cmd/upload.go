package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OpenPecha/wikisource-automation/internal/config"
	"github.com/OpenPecha/wikisource-automation/internal/progress"
	"github.com/OpenPecha/wikisource-automation/internal/wikisource"
	"github.com/OpenPecha/wikisource-automation/internal/worklist"
	"github.com/spf13/cobra"
)

var uploadWorklist string
var uploadDataDir string
var uploadIndex string
var uploadFile string

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload etext pages to their proofread wikisource pages",
	Long: `Upload page-labelled text files to the wiki. Either pass a worklist
CSV (Index,text) plus the directory holding the text files, or a single
--index/--file pair. Per-page results are appended to the upload log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, dataDir, err := uploadEntries()
		if err != nil {
			return err
		}

		log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		cache, err := wikisource.NewIndexCache(config.GetCacheDir())
		if err != nil {
			return err
		}
		client := wikisource.NewClient(config.GetAPIURL(),
			wikisource.WithIndexCache(cache),
			wikisource.WithLogger(log),
			wikisource.WithTimeout(config.GetHTTPTimeout()),
		)

		ctx := cmd.Context()
		if user := config.C.APIUser; user != "" {
			if err := client.Login(ctx, user, config.C.APIPassword); err != nil {
				return err
			}
		}

		results := progress.NewLog(config.GetUploadLog())
		uploader := wikisource.NewUploader(client, log, results)

		var failed int
		for _, e := range entries {
			path := filepath.Join(dataDir, e.Text)
			log.Info("processing work item", "index", e.Index, "file", path)
			stats, err := uploader.UploadFile(ctx, e.Index, path)
			if err != nil {
				log.Error("work item failed", "index", e.Index, "error", err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d uploaded, %d failed, %d skipped\n",
				e.Index, stats.Uploaded, stats.Failed, stats.Skipped)
		}
		if failed > 0 {
			return fmt.Errorf("%d work item(s) failed", failed)
		}
		return nil
	},
}

// uploadEntries resolves the flag combinations into work items.
func uploadEntries() ([]worklist.Entry, string, error) {
	if uploadIndex != "" || uploadFile != "" {
		if uploadIndex == "" || uploadFile == "" {
			return nil, "", fmt.Errorf("--index and --file must be used together")
		}
		return []worklist.Entry{{Index: uploadIndex, Text: filepath.Base(uploadFile)}}, filepath.Dir(uploadFile), nil
	}
	if uploadWorklist == "" {
		return nil, "", fmt.Errorf("either --csv or --index/--file is required")
	}
	entries, err := worklist.ReadCSV(uploadWorklist)
	if err != nil {
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", fmt.Errorf("worklist %s has no entries", uploadWorklist)
	}
	return entries, uploadDataDir, nil
}

func init() {
	uploadCmd.Flags().StringVar(&uploadWorklist, "csv", "", "Worklist CSV with Index,text columns")
	uploadCmd.Flags().StringVar(&uploadDataDir, "data-dir", "data/text", "Directory holding the worklist's text files")
	uploadCmd.Flags().StringVar(&uploadIndex, "index", "", "Single index title to upload to")
	uploadCmd.Flags().StringVar(&uploadFile, "file", "", "Single etext file to upload")

	rootCmd.AddCommand(uploadCmd)
}
