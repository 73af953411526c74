package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/audit"
	"github.com/confsmith/confsmith/internal/config"
	"github.com/confsmith/confsmith/internal/db"
	"github.com/confsmith/confsmith/internal/db/mongodb"
	"github.com/confsmith/confsmith/internal/db/redis"
	"github.com/confsmith/confsmith/internal/provision"
)

var checkEngine string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run connection smoke tests against the provisioned engines",
	Long: `Connect to each configured engine, ping it, and prove a full
write/read/delete round trip. Reports server versions on success.

Connection parameters come from the tool configuration; the
CONFSMITH_REDIS_* and CONFSMITH_MONGO_* environment variables override
them.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkEngine, "engine", "e", "", "check only one engine: key-value-store or document-database")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openAudit(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	failed := 0

	if checkEngine == "" || checkEngine == "key-value-store" || checkEngine == "redis" || checkEngine == "kv" {
		if err := checkKeyValueStore(ctx, cfg, store); err != nil {
			fmt.Printf("%s key-value store: %v\n", FormatError("❌"), err)
			failed++
		}
	}

	if checkEngine == "" || checkEngine == "document-database" || checkEngine == "mongodb" || checkEngine == "mongod" {
		if err := checkDocumentDatabase(ctx, cfg, store); err != nil {
			fmt.Printf("%s document database: %v\n", FormatError("❌"), err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d engine check(s) failed", failed)
	}

	fmt.Println()
	fmt.Printf("%s All engine checks passed\n", FormatSuccess("🎉"))
	return nil
}

func checkKeyValueStore(ctx context.Context, cfg *config.Config, store *audit.Store) error {
	fmt.Println(FormatHeader("🔍 Checking key-value store..."))
	fmt.Printf("  %s\n", FormatLabelValue("Address:", cfg.KeyValueStore.Addr()))

	dbIndex, _ := strconv.Atoi(cfg.KeyValueStore.Database)
	prober, err := redis.New(redis.Options{
		Addr:     cfg.KeyValueStore.Addr(),
		Password: cfg.KeyValueStore.Password,
		DB:       dbIndex,
	})
	if err != nil {
		return err
	}

	err = runProbe(ctx, prober)
	recordCheck(ctx, store, "key-value-store", cfg.KeyValueStore.Addr(), err)
	return err
}

func checkDocumentDatabase(ctx context.Context, cfg *config.Config, store *audit.Store) error {
	fmt.Println(FormatHeader("🔍 Checking document database..."))
	fmt.Printf("  %s\n", FormatLabelValue("Address:", cfg.DocumentDatabase.Addr()))

	prober, err := mongodb.New(&db.Config{
		URI:      documentDatabaseURI(cfg.DocumentDatabase),
		Database: cfg.DocumentDatabase.Database,
	})
	if err != nil {
		return err
	}

	err = runProbe(ctx, prober)
	recordCheck(ctx, store, "document-database", cfg.DocumentDatabase.Addr(), err)
	return err
}

// documentDatabaseURI builds the probe URI. Without configured credentials
// the connection is anonymous; once setup has enabled authorization the
// configured user must be supplied or every probe write is rejected.
func documentDatabaseURI(e config.EngineConfig) string {
	if e.User == "" {
		return provision.MongoURI("", "", e.Host, e.Port, "", "")
	}

	authSource := e.AuthSource
	if authSource == "" {
		authSource = e.Database
	}
	if authSource == "" {
		authSource = "admin"
	}
	return provision.MongoURI(e.User, e.Password, e.Host, e.Port, e.Database, authSource)
}

// runProbe walks one prober through the full smoke test.
func runProbe(ctx context.Context, prober db.Prober) error {
	if err := prober.Connect(ctx); err != nil {
		return err
	}
	defer prober.Disconnect(ctx)

	if err := prober.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	fmt.Printf("  %s Ping OK\n", FormatSuccess("✅"))

	if err := prober.RoundTrip(ctx); err != nil {
		return fmt.Errorf("read/write round trip failed: %w", err)
	}
	fmt.Printf("  %s Read/write round trip OK\n", FormatSuccess("✅"))

	info, err := prober.Info(ctx)
	if err != nil {
		return fmt.Errorf("server info failed: %w", err)
	}
	fmt.Printf("  %s\n", FormatLabelValue("Version:", info.Version))
	for key, value := range info.Details {
		fmt.Printf("  %s\n", FormatLabelValue(key+":", value))
	}

	return nil
}

func recordCheck(ctx context.Context, store *audit.Store, engine, target string, checkErr error) {
	outcome := "ok"
	errCount := 0
	if checkErr != nil {
		outcome = "failed"
		errCount = 1
	}
	run := &audit.Run{
		Engine:  engine,
		Action:  "check",
		Target:  target,
		Errors:  errCount,
		Outcome: outcome,
	}
	if err := store.Record(ctx, run); err != nil {
		fmt.Printf("%s failed to record run: %v\n", FormatWarning("warning:"), err)
	}
}
