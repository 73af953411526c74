package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize confsmith configuration",
	Long:  `Interactive wizard to set up the confsmith configuration: engine endpoints, managed config paths and the audit log location.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("🚀 Welcome to confsmith setup")
	fmt.Println("=============================")
	fmt.Println()

	path := configPath()
	if config.Exists(path) {
		fmt.Printf("Configuration file already exists at: %s\n", path)
		confirmed, err := promptYesNo(reader, "Do you want to overwrite it? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	fmt.Println("\n📊 Key-value store")
	fmt.Println("-------------------")
	host, err := promptOptional(reader, "Host [localhost]: ", "localhost")
	if err != nil {
		return err
	}
	cfg.KeyValueStore.Host = host

	port, err := promptPort(reader, "Port [6379]: ", 6379)
	if err != nil {
		return err
	}
	cfg.KeyValueStore.Port = port

	password, err := promptOptional(reader, "Password (empty for none): ", "")
	if err != nil {
		return err
	}
	cfg.KeyValueStore.Password = password

	dbIndex, err := promptOptional(reader, "Database index [0]: ", "0")
	if err != nil {
		return err
	}
	if _, convErr := strconv.Atoi(dbIndex); convErr != nil {
		return fmt.Errorf("database index must be an integer: %s", dbIndex)
	}
	cfg.KeyValueStore.Database = dbIndex

	kvConfigPath, err := promptOptional(reader, "Managed config file [/etc/redis/redis.conf]: ", "/etc/redis/redis.conf")
	if err != nil {
		return err
	}
	cfg.KeyValueStore.ConfigPath = kvConfigPath

	fmt.Println("\n📊 Document database")
	fmt.Println("--------------------")
	host, err = promptOptional(reader, "Host [localhost]: ", "localhost")
	if err != nil {
		return err
	}
	cfg.DocumentDatabase.Host = host

	port, err = promptPort(reader, "Port [27017]: ", 27017)
	if err != nil {
		return err
	}
	cfg.DocumentDatabase.Port = port

	dbUser, err := promptOptional(reader, "Username (empty for none): ", "")
	if err != nil {
		return err
	}
	cfg.DocumentDatabase.User = dbUser

	dbPassword, err := promptOptional(reader, "Password (empty for none): ", "")
	if err != nil {
		return err
	}
	cfg.DocumentDatabase.Password = dbPassword

	dbName, err := promptOptional(reader, "Application database [confsmith]: ", "confsmith")
	if err != nil {
		return err
	}
	cfg.DocumentDatabase.Database = dbName

	docConfigPath, err := promptOptional(reader, "Managed config file [/etc/mongod.conf]: ", "/etc/mongod.conf")
	if err != nil {
		return err
	}
	cfg.DocumentDatabase.ConfigPath = docConfigPath

	fmt.Println("\n💾 Saving configuration...")
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Configuration saved to: %s\n", path)

	fmt.Println("\n📋 Configuration summary")
	fmt.Println("========================")
	fmt.Printf("Key-value store:   %s (config: %s, password: %s)\n",
		cfg.KeyValueStore.Addr(), cfg.KeyValueStore.ConfigPath, maskSensitiveData(cfg.KeyValueStore.Password))
	fmt.Printf("Document database: %s (config: %s, password: %s)\n",
		cfg.DocumentDatabase.Addr(), cfg.DocumentDatabase.ConfigPath, maskSensitiveData(cfg.DocumentDatabase.Password))
	fmt.Printf("Audit log:         %s\n", cfg.Audit.Path)
	fmt.Println()
	fmt.Println("🎉 Setup complete!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Validate a config:    confsmith validate redis.conf --engine key-value-store")
	fmt.Println("  2. Test the connections: confsmith check")
	fmt.Println("  3. Bootstrap users:      confsmith setup")
	fmt.Println("  4. Apply a config:       confsmith apply redis.conf --engine key-value-store")

	return nil
}
