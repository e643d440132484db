package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"doc2file/internal/app"
	"doc2file/internal/config"
	"doc2file/internal/convert"
	"doc2file/internal/model"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "RegisterFolders");
// parameters records its arguments for the audit row.
func newApp(operation, parameters string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation, parameters)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase prompts on stderr and reads a passphrase without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pass), nil
}

var rootCmd = &cobra.Command{
	Use:   "doc2file",
	Short: "Legacy document to content library conversion tool",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Database:   %s\n", cfg.Database.Type)
		fmt.Printf("Directory:  %s\n", cfg.Directory.Type)
		fmt.Printf("Payload:    %s\n", cfg.Payload.Type)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var keysSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate encryption keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetupKeys", "")
		if err != nil {
			return err
		}
		defer a.Close()

		pass, err := readPassphrase("Passphrase for private key: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := a.SetupKeys(pass); err != nil {
			a.MarkFailed()
			return fmt.Errorf("setting up keys: %w", err)
		}

		fmt.Println("Encryption keys generated.")
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import FILENAME",
	Short: "Import a legacy folder/document export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folders, docs, err := readLegacyExport(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("ImportLegacy", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ImportLegacy(folders, docs); err != nil {
			a.MarkFailed()
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d folder(s), %d document(s)\n", len(folders), len(docs))
		return nil
	},
}

// register command
var registerCmd = &cobra.Command{
	Use:   "register [FOLDER...]",
	Short: "Queue folders for conversion",
	Long: `Queue legacy folders (by developer-name) for conversion. With no
arguments, every folder is queued. Folders already in the conversion ledger
are skipped; remove their ledger entry to force reprocessing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RegisterFolders", strings.Join(args, " "))
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.RegisterFolders(args)
		if err != nil {
			a.MarkFailed()
			return fmt.Errorf("registration failed: %w", err)
		}

		for _, s := range report.Skipped {
			fmt.Printf("skipped %s (already tracked, tracking id %s)\n", s.FolderDeveloperName, s.TrackingID)
		}
		for _, r := range report.Registered {
			fmt.Printf("registered %s\n", r.FolderDeveloperName)
		}
		fmt.Printf("Registered %d folder(s), skipped %d\n", len(report.Registered), len(report.Skipped))
		return nil
	},
}

// provision command
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision libraries and access groups",
	Long: `Create the access group and content library pair for every folder in
the conversion ledger, replicate the captured membership into the group, and
grant the group access to the library. Re-running provisions nothing new.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ProvisionLibraries", "")
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.ProvisionLibraries()
		if err != nil {
			a.MarkFailed()
			return fmt.Errorf("provisioning failed: %w", err)
		}

		fmt.Printf("Groups created:    %d\n", report.GroupsCreated)
		fmt.Printf("Libraries created: %d\n", report.LibrariesCreated)
		fmt.Printf("Members added:     %d\n", report.MembersAdded)
		fmt.Printf("Grants added:      %d\n", report.GrantsAdded)
		if len(report.SlugsReused) > 0 {
			fmt.Printf("Reused existing:   %s\n", strings.Join(report.SlugsReused, ", "))
		}
		return nil
	},
}

// migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate documents into libraries",
	RunE: func(cmd *cobra.Command, args []string) error {
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		a, err := newApp("MigrateDocuments", fmt.Sprintf("batch-size=%d", batchSize))
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.MigrateDocuments(batchSize)
		if err != nil {
			a.MarkFailed()
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Printf("Processed:        %d\n", summary.Processed)
		fmt.Printf("Migrated:         %d\n", summary.Migrated)
		fmt.Printf("Already migrated: %d\n", summary.AlreadyMigrated)
		fmt.Printf("Failed:           %d\n", summary.Failed)
		for _, f := range summary.Failures {
			fmt.Printf("  %s: %s\n", f.DocumentID, f.Reason)
		}
		if summary.Failed > 0 {
			a.MarkFailed()
		}
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View per-folder conversion progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetStatus", "")
		if err != nil {
			return err
		}
		defer a.Close()

		statuses, err := a.GetStatus()
		if err != nil {
			return err
		}

		if len(statuses) == 0 {
			fmt.Println("No legacy folders found.")
			return nil
		}

		for _, s := range statuses {
			var indicator string
			switch {
			case s.Tracked && s.Provisioned:
				indicator = "TP"
			case s.Tracked:
				indicator = "T "
			default:
				indicator = "  "
			}
			fmt.Printf("%s  %-30s  %d/%d migrated\n",
				indicator, s.FolderDeveloperName, s.DocumentsMigrated, s.DocumentsTotal)
		}
		return nil
	},
}

// ledger command
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Manage the conversion ledger",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversion ledger entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListLedger", "")
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.ListLedger()
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("Conversion ledger is empty.")
			return nil
		}

		for _, r := range records {
			fmt.Printf("%s  folder:%s  %-30s  groups:%d  %s\n",
				r.ID, r.FolderID, r.FolderDeveloperName, len(r.GroupIDs),
				r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var ledgerRmCmd = &cobra.Command{
	Use:   "rm FOLDER_ID",
	Short: "Remove a ledger entry, re-enabling registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveTrackingRecord", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RemoveTrackingRecord(args[0]); err != nil {
			a.MarkFailed()
			return fmt.Errorf("removing ledger entry: %w", err)
		}

		fmt.Printf("Removed ledger entry for folder %s\n", args[0])
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View conversion operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory", "")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No conversion operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt != nil {
				d := op.FinishedAt.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-20s  %s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
			)
		}
		return nil
	},
}

// fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch FILE_ID",
	Short: "Fetch a migrated file's payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp("FetchPayload", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		file, err := a.FindMigratedFile(args[0])
		if err != nil {
			return err
		}
		if file == nil {
			return fmt.Errorf("no migrated file with id %s", args[0])
		}
		if file.ExternalURL != "" {
			fmt.Printf("File is an external link: %s\n", file.ExternalURL)
			return nil
		}

		var dec convert.DecryptionContext
		if file.Encrypted {
			pass, err := readPassphrase("Passphrase for private key: ")
			if err != nil {
				return err
			}
			dec, err = a.Unlock(pass)
			if err != nil {
				return fmt.Errorf("unlocking private key: %w", err)
			}
		}

		out := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := a.FetchPayload(args[0], out, dec); err != nil {
			return fmt.Errorf("fetching payload: %w", err)
		}
		if output != "" {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	keysCmd.AddCommand(keysSetupCmd)

	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerRmCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().IntP("batch-size", "b", 0, "Documents per migration batch (0 = configured default)")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringP("output", "o", "", "Write payload to this file instead of stdout")
}

// legacyExport is the JSON wire format for the import command.
type legacyExport struct {
	Folders []struct {
		ID            string `json:"id"`
		DeveloperName string `json:"developer_name"`
		Name          string `json:"name"`
	} `json:"folders"`
	Documents []struct {
		ID            string    `json:"id"`
		FolderID      string    `json:"folder_id"`
		DeveloperName string    `json:"developer_name"`
		Type          string    `json:"type"`
		Name          string    `json:"name"`
		Description   string    `json:"description"`
		Keywords      string    `json:"keywords"`
		URL           string    `json:"url"`
		Body          []byte    `json:"body"` // base64 in JSON
		AuthorID      string    `json:"author_id"`
		CreatedBy     string    `json:"created_by"`
		CreatedAt     time.Time `json:"created_at"`
		ModifiedBy    string    `json:"modified_by"`
		ModifiedAt    time.Time `json:"modified_at"`
	} `json:"documents"`
}

// readLegacyExport parses an export file into model types.
func readLegacyExport(path string) ([]*model.Folder, []*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	var export legacyExport
	if err := json.NewDecoder(f).Decode(&export); err != nil {
		return nil, nil, fmt.Errorf("decoding export file: %w", err)
	}

	folders := make([]*model.Folder, 0, len(export.Folders))
	for _, ef := range export.Folders {
		folders = append(folders, &model.Folder{
			ID:            ef.ID,
			DeveloperName: ef.DeveloperName,
			Name:          ef.Name,
		})
	}

	docs := make([]*model.Document, 0, len(export.Documents))
	for _, ed := range export.Documents {
		docs = append(docs, &model.Document{
			ID:            ed.ID,
			FolderID:      ed.FolderID,
			DeveloperName: ed.DeveloperName,
			Type:          ed.Type,
			Name:          ed.Name,
			Description:   ed.Description,
			Keywords:      ed.Keywords,
			URL:           ed.URL,
			Body:          ed.Body,
			AuthorID:      ed.AuthorID,
			CreatedBy:     ed.CreatedBy,
			CreatedAt:     ed.CreatedAt,
			ModifiedBy:    ed.ModifiedBy,
			ModifiedAt:    ed.ModifiedAt,
		})
	}

	return folders, docs, nil
}
