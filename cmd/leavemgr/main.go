// Command leavemgr runs the Leave Manager MCP server: HR and company data
// exposed as remote-callable tools over stdio or HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hrplus/leavemgr/mcp"
)

var (
	flagTransport string
	flagDB        string
	flagHost      string
	flagPort      int
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "leavemgr",
	Short: "Leave Manager MCP server",
	Long:  "MCP server exposing employees, leave, work reports, clients, projects, and payments as tools with fuzzy employee name resolution.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config := mcp.LoadConfig()

		// Flags override environment
		if cmd.Flags().Changed("db") {
			config.DatabaseURL = flagDB
		}
		if cmd.Flags().Changed("host") {
			config.Host = flagHost
		}
		if cmd.Flags().Changed("port") {
			config.Port = flagPort
		}
		if cmd.Flags().Changed("debug") {
			config.Debug = flagDebug
		}

		if config.RequireAPIKey && len(config.APIKeys) == 0 {
			fmt.Fprintln(os.Stderr, "WARNING: API key authentication is enabled but no keys are configured.")
			fmt.Fprintln(os.Stderr, "         Set LEAVEMGR_API_KEYS, or LEAVEMGR_REQUIRE_API_KEY=false to disable authentication.")
		}

		switch flagTransport {
		case "http":
			server, err := mcp.NewHTTPServer(config)
			if err != nil {
				return err
			}
			defer server.Close()
			return server.Start()
		case "stdio":
			server, err := mcp.NewServer(config)
			if err != nil {
				return err
			}
			defer server.Close()
			return server.Start()
		default:
			return fmt.Errorf("unknown transport %q (expected stdio or http)", flagTransport)
		}
	},
}

var genkeyCmd = &cobra.Command{
	Use:   "genkey",
	Short: "Generate a new API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := mcp.GenerateAPIKey()
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&flagTransport, "transport", "t", "stdio", "Transport: stdio or http")
	serveCmd.Flags().StringVar(&flagDB, "db", "", "Database DSN (mysql://..., libsql://..., or SQLite path)")
	serveCmd.Flags().StringVar(&flagHost, "host", "0.0.0.0", "HTTP listen host")
	serveCmd.Flags().IntVarP(&flagPort, "port", "p", 8080, "HTTP listen port")
	serveCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(genkeyCmd)
}

func main() {
	// Best effort; missing .env is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
