package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/audit"
	"github.com/confsmith/confsmith/internal/db"
	"github.com/confsmith/confsmith/internal/db/mongodb"
	"github.com/confsmith/confsmith/internal/provision"
)

var (
	setupAdminUser   string
	setupAdminPass   string
	setupAppUser     string
	setupAppPass     string
	setupAppDatabase string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Bootstrap document database users and collections",
	Long: `Bootstrap a freshly installed document database: create an
administrator account, an application account scoped to the application
database, and the application collections with their indexes.

The command is re-runnable; users and collections that already exist are
skipped. When the server already enforces authorization, admin
credentials must be supplied so the application user can still be
managed.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupAdminUser, "admin-user", "admin", "administrator username")
	setupCmd.Flags().StringVar(&setupAdminPass, "admin-password", "", "administrator password (prompted when empty)")
	setupCmd.Flags().StringVar(&setupAppUser, "app-user", "", "application username (defaults to the application database name)")
	setupCmd.Flags().StringVar(&setupAppPass, "app-password", "", "application password (prompted when empty)")
	setupCmd.Flags().StringVar(&setupAppDatabase, "database", "", "application database (default from tool config)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	appDB := setupAppDatabase
	if appDB == "" {
		appDB = cfg.DocumentDatabase.Database
	}
	if appDB == "" {
		return fmt.Errorf("no application database: pass --database or set it in %s", configPath())
	}

	appUser := setupAppUser
	if appUser == "" {
		appUser = appDB
	}

	reader := bufio.NewReader(os.Stdin)
	if setupAdminPass == "" {
		setupAdminPass, err = promptRequired(reader, "Administrator password: ")
		if err != nil {
			return err
		}
	}
	if setupAppPass == "" {
		setupAppPass, err = promptRequired(reader, fmt.Sprintf("Password for application user %q: ", appUser))
		if err != nil {
			return err
		}
	}

	fmt.Println(FormatHeader("🚀 Bootstrapping document database..."))

	ctx := context.Background()

	// First contact without credentials; a fresh install accepts it.
	host, port := cfg.DocumentDatabase.Host, cfg.DocumentDatabase.Port
	mongo, err := connectMongo(ctx, provision.MongoURI("", "", host, port, "", ""), appDB)
	if err != nil {
		return err
	}

	authRequired, err := mongo.AuthRequired(ctx)
	if err != nil {
		mongo.Disconnect(ctx)
		return err
	}

	if authRequired {
		fmt.Println(FormatDim("Authorization already enforced; reconnecting with admin credentials."))
		mongo.Disconnect(ctx)

		uri := provision.MongoURI(setupAdminUser, setupAdminPass, host, port, "", "admin")
		mongo, err = connectMongo(ctx, uri, appDB)
		if err != nil {
			return fmt.Errorf("admin reconnect failed: %w", err)
		}
	} else {
		fmt.Println(FormatDim("No authorization enforced yet; creating the administrator first."))

		created, err := mongo.EnsureUser(ctx, "admin", mongodb.UserSpec{
			Name:     setupAdminUser,
			Password: setupAdminPass,
			Roles: []mongodb.Role{
				{Role: "userAdminAnyDatabase", DB: "admin"},
				{Role: "readWriteAnyDatabase", DB: "admin"},
				{Role: "dbAdminAnyDatabase", DB: "admin"},
				{Role: "clusterAdmin", DB: "admin"},
			},
		})
		if err != nil {
			mongo.Disconnect(ctx)
			return err
		}
		reportUser("administrator", setupAdminUser, created)
	}
	defer mongo.Disconnect(ctx)

	created, err := mongo.EnsureUser(ctx, appDB, mongodb.UserSpec{
		Name:     appUser,
		Password: setupAppPass,
		Roles: []mongodb.Role{
			{Role: "readWrite", DB: appDB},
			{Role: "dbAdmin", DB: appDB},
		},
	})
	if err != nil {
		return err
	}
	reportUser("application user", appUser, created)

	if err := mongo.EnsureCollections(ctx, "provision_history"); err != nil {
		return err
	}
	if err := mongo.EnsureIndexes(ctx, "provision_history", "created_at", "action"); err != nil {
		return err
	}
	fmt.Printf("%s Application collections ready\n", FormatSuccess("✅"))

	// Verify the application credentials actually work.
	appURI := provision.MongoURI(appUser, setupAppPass, host, port, appDB, appDB)
	verify, err := connectMongo(ctx, appURI, appDB)
	if err != nil {
		return fmt.Errorf("verification with application credentials failed: %w", err)
	}
	verify.Disconnect(ctx)
	fmt.Printf("%s Application credentials verified\n", FormatSuccess("✅"))

	recordSetup(ctx, cfg.Audit.Path, cfg.DocumentDatabase.Addr())

	fmt.Println()
	fmt.Println(FormatHeader("📋 Connection strings"))
	fmt.Printf("  %s\n", FormatLabelValue("Admin:", provision.MongoURI(setupAdminUser, "***", host, port, "", "admin")))
	fmt.Printf("  %s\n", FormatLabelValue("App:  ", provision.MongoURI(appUser, "***", host, port, appDB, appDB)))
	fmt.Println()
	fmt.Printf("%s Setup complete. Enable security.authorization in the engine config and restart it.\n", FormatSuccess("🎉"))
	return nil
}

func connectMongo(ctx context.Context, uri, database string) (*mongodb.MongoDB, error) {
	mongo, err := mongodb.New(&db.Config{URI: uri, Database: database})
	if err != nil {
		return nil, err
	}
	if err := mongo.Connect(ctx); err != nil {
		return nil, err
	}
	return mongo, nil
}

func reportUser(kind, name string, created bool) {
	if created {
		fmt.Printf("%s Created %s %q\n", FormatSuccess("✅"), kind, name)
	} else {
		fmt.Printf("%s %s %q already exists, skipped\n", FormatWarning("⚠️ "), kind, name)
	}
}

func recordSetup(ctx context.Context, auditPath, target string) {
	store, err := audit.Open(auditPath)
	if err != nil {
		fmt.Printf("%s failed to open audit log: %v\n", FormatWarning("warning:"), err)
		return
	}
	defer store.Close()

	run := &audit.Run{
		Engine:  "document-database",
		Action:  "setup",
		Target:  target,
		Outcome: "ok",
	}
	if err := store.Record(ctx, run); err != nil {
		fmt.Printf("%s failed to record run: %v\n", FormatWarning("warning:"), err)
	}
}
