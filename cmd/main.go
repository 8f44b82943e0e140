package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mail-digest/internal/config"
	"mail-digest/internal/digest"
	"mail-digest/internal/logging"
	"mail-digest/internal/mailstore"
	"mail-digest/internal/models"
	"mail-digest/internal/scanner"
)

var (
	flagConfig   string
	flagDaysBack int
	flagFolder   string
	flagNoBody   bool
	flagOutput   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "maildigest",
		Short: "Extract recent emails from a mail store into a plain-text digest",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.Flags().IntVar(&flagDaysBack, "days-back", 0, "override daysBack (1 = today only)")
	rootCmd.Flags().StringVar(&flagFolder, "folder", "", "override the folder path (slash-delimited)")
	rootCmd.Flags().BoolVar(&flagNoBody, "no-body", false, "omit message bodies from the digest")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the digest to a file instead of stdout")

	if err := rootCmd.Execute(); err != nil {
		logging.Log.Fatalf("Error: %v", err)
	}
}

// run performs one extraction pass. Once configuration loads, every failure
// degrades to the empty digest sentinel and the process still exits zero; the
// output is always a well-formed text block.
func run() {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		logging.Log.Fatalf("Error reading configuration file: %v", err)
	}
	applyFlagOverrides(cfg)

	locallog := logging.ForRun(uuid.New().String())
	locallog.Infof("Starting digest extraction: folder %q, last %d day(s)", cfg.Digest.FolderPath, cfg.Digest.DaysBack)

	records := fetchRecords(cfg, locallog)
	locallog.Infof("Extracted %d message(s)", len(records))

	if err := emit(digest.Format(records)); err != nil {
		locallog.Errorf("Error writing digest: %v", err)
	}
}

func applyFlagOverrides(cfg *models.Config) {
	if flagDaysBack >= 1 {
		cfg.Digest.DaysBack = flagDaysBack
	}
	if flagFolder != "" {
		cfg.Digest.FolderPath = flagFolder
	}
	if flagNoBody {
		cfg.Digest.IncludeBody = false
	}
}

// fetchRecords connects to the mail store, resolves the configured folder and
// scans it. Connection, login and resolution failures are fatal to the run
// and yield an empty result, not a crash.
func fetchRecords(cfg *models.Config, locallog *logrus.Entry) []models.ExtractedRecord {
	store := mailstore.NewStandardStore()

	if err := store.Connect(cfg.Email.Imap); err != nil {
		locallog.Errorf("Mail store connection error: %v", err)
		return nil
	}
	defer func(store *mailstore.StandardStore) {
		_ = store.Close()
	}(store)

	if err := store.Login(cfg.Email.Login, cfg.Email.Password); err != nil {
		locallog.Errorf("Login error: %v", err)
		return nil
	}

	folder, err := store.ResolveFolder(cfg.Digest.FolderPath)
	if err != nil {
		locallog.Errorf("Folder resolution error: %v", err)
		return nil
	}
	locallog.Infof("Folder %q resolved, scanning up to %d item(s)", folder.Name, cfg.Digest.WindowSize)

	cutoff := scanner.CutoffDate(time.Now(), cfg.Digest.DaysBack, time.Local)
	records, err := scanner.New(store, cfg, locallog).Scan(folder, cutoff)
	if err != nil {
		locallog.Errorf("Scan error: %v", err)
		return nil
	}
	return records
}

func emit(text string) error {
	if flagOutput == "" {
		fmt.Println(text)
		return nil
	}
	return os.WriteFile(flagOutput, []byte(text), 0o644)
}
