package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/api"
)

var (
	apiPort    string
	apiHost    string
	corsOrigin string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the confsmith REST API server",
	Long: `Start the REST API server so provisioning pipelines can validate and
render configuration documents over HTTP:

- GET  /api/v1/health            - Health check
- GET  /api/v1/schemas           - Supported engines
- GET  /api/v1/schemas/:engine   - Option catalog for one engine
- GET  /api/v1/runs              - Recent audit log entries
- POST /api/v1/validate          - Validate a raw document
- POST /api/v1/render            - Validate and render a raw document`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVarP(&apiPort, "port", "p", "8787", "Port to run the API server on")
	apiCmd.Flags().StringVarP(&apiHost, "host", "H", "127.0.0.1", "Host to bind the API server to")
	apiCmd.Flags().StringVarP(&corsOrigin, "cors-origin", "c", "", "CORS origin to allow (overrides config file, use '*' for all origins)")
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	selectedCORSOrigin := corsOrigin
	if selectedCORSOrigin == "" {
		if cfg.CORSOrigin != "" {
			selectedCORSOrigin = cfg.CORSOrigin
		} else {
			selectedCORSOrigin = "*"
		}
	}

	store, err := openAudit(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Printf("🚀 Starting confsmith API server\n")
	fmt.Printf("================================\n")
	fmt.Printf("Host: %s\n", apiHost)
	fmt.Printf("Port: %s\n", apiPort)
	fmt.Printf("CORS Origin: %s\n", selectedCORSOrigin)
	fmt.Printf("URL: http://%s:%s/api/v1\n", apiHost, apiPort)
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop the server")

	server := api.NewServer(store, selectedCORSOrigin)
	address := fmt.Sprintf("%s:%s", apiHost, apiPort)
	return server.Run(address)
}
