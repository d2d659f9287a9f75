package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/auth"
	"github.com/mkarlis/posledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "posledger-cli",
		Short: "posledger CLI tool",
		Long:  `A command line interface for operating the posledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the posledger API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("POSLEDGER_TOKEN"), "Bearer token for API commands")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Stock ledger operations",
	}
	ledgerCmd.AddCommand(consistencyCmd())

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Balance operations",
	}
	balanceCmd.AddCommand(balanceGetCmd())

	sheetCmd := &cobra.Command{
		Use:   "sheet",
		Short: "Count sheet operations",
	}
	sheetCmd.AddCommand(sheetPostCmd())

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Register session operations",
	}
	sessionCmd.AddCommand(sessionSummaryCmd())

	rootCmd.AddCommand(ledgerCmd, balanceCmd, sheetCmd, sessionCmd, migrateCmd(), mintTokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check that balances match the sum of ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := apiRequest(http.MethodGet, "/api/v1/ledger/consistency")
			if err != nil {
				return err
			}

			report := map[string]any{}
			if err := json.Unmarshal(body, &report); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			switch status {
			case http.StatusOK:
				fmt.Println("consistency check PASSED")
				printJSON(report)
				return nil
			case http.StatusConflict:
				fmt.Println("consistency check FAILED")
				printJSON(report)
				return fmt.Errorf("projection drift detected")
			default:
				return fmt.Errorf("unexpected status %d: %s", status, string(body))
			}
		},
	}
}

func balanceGetCmd() *cobra.Command {
	var lotID string
	cmd := &cobra.Command{
		Use:   "get <item-id> <location-id>",
		Short: "Show the materialized balance for one key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/balances/%s/%s", url.PathEscape(args[0]), url.PathEscape(args[1]))
			if lotID != "" {
				path += "?lot_id=" + url.QueryEscape(lotID)
			}

			status, body, err := apiRequest(http.MethodGet, path)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("unexpected status %d: %s", status, string(body))
			}

			return printBody(body)
		},
	}
	cmd.Flags().StringVar(&lotID, "lot", "", "Lot ID")
	return cmd
}

func sheetPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post <sheet-id>",
		Short: "Post an approved count sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/counts/%s/post", url.PathEscape(args[0]))

			status, body, err := apiRequest(http.MethodPost, path)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("unexpected status %d: %s", status, string(body))
			}

			return printBody(body)
		},
	}
}

func sessionSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <session-id>",
		Short: "Show totals for one register session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/sessions/%s/summary", url.PathEscape(args[0]))

			status, body, err := apiRequest(http.MethodGet, path)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("unexpected status %d: %s", status, string(body))
			}

			return printBody(body)
		},
	}
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string
	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Run database migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "up":
				return postgres.RunMigrations(databaseURL, path)
			case "down":
				return postgres.RunMigrationsDown(databaseURL, path)
			default:
				return fmt.Errorf("unknown direction %q, want up or down", args[0])
			}
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL URL")
	cmd.Flags().StringVar(&path, "path", "migrations", "Migrations directory")
	return cmd
}

func mintTokenCmd() *cobra.Command {
	var secret, tenantID, actorID, role string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "mint-token",
		Short: "Mint a JWT for API access",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Role(role)
			if !r.IsValid() {
				return fmt.Errorf("invalid role %q", role)
			}
			if secret == "" {
				return fmt.Errorf("signing secret is required")
			}

			manager := auth.NewJWTManager(secret, ttl)
			signed, err := manager.Generate(&domain.Actor{
				ID:       actorID,
				TenantID: tenantID,
				Role:     r,
			})
			if err != nil {
				return err
			}

			fmt.Println(signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "Signing secret")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant ID")
	cmd.Flags().StringVar(&actorID, "actor", "", "Actor ID")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleCashier), "Role (admin, manager or cashier)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

func apiRequest(method, path string) (int, []byte, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}

func printBody(body []byte) error {
	parsed := map[string]any{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	printJSON(parsed)
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(data))
}
