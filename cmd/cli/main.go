package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL        string
	timeout        time.Duration
	idempotencyKey string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gowallet-cli",
		Short: "GoWallet CLI tool",
		Long:  `A command line interface for interacting with the GoWallet API.`,
	}

	cmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoWallet API")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	cmd.PersistentFlags().StringVar(&idempotencyKey, "key", "", "Idempotency key for mutating requests")

	cmd.AddCommand(userCmd())
	cmd.AddCommand(walletCmd())

	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User operations",
	}

	var name string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/api/v1/users/", map[string]any{"name": name})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "User name")
	_ = createCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodGet, "/api/v1/users/"+args[0], nil)
		},
	}

	walletsCmd := &cobra.Command{
		Use:   "wallets <id>",
		Short: "List a user's wallets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodGet, "/api/v1/users/"+args[0]+"/wallets", nil)
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions <id>",
		Short: "List transactions across a user's wallets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodGet, "/api/v1/users/"+args[0]+"/transactions", nil)
		},
	}

	cmd.AddCommand(createCmd, getCmd, walletsCmd, transactionsCmd)

	return cmd
}

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	var userID string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/api/v1/wallets/", map[string]any{"user_id": userID})
		},
	}
	createCmd.Flags().StringVar(&userID, "user", "", "Owner user ID")
	_ = createCmd.MarkFlagRequired("user")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodGet, "/api/v1/wallets/"+args[0], nil)
		},
	}

	var at string
	balanceCmd := &cobra.Command{
		Use:   "balance <id>",
		Short: "Get a wallet's balance, optionally at a past instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if at != "" {
				return call(http.MethodGet, "/api/v1/wallets/"+args[0]+"/balance/history?at="+at, nil)
			}
			return call(http.MethodGet, "/api/v1/wallets/"+args[0]+"/balance", nil)
		},
	}
	balanceCmd.Flags().StringVar(&at, "at", "", "RFC 3339 instant for a historical balance")

	var amount string
	depositCmd := &cobra.Command{
		Use:   "deposit <id>",
		Short: "Deposit into a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/api/v1/wallets/"+args[0]+"/deposit", map[string]any{"amount": amount})
		},
	}
	depositCmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	_ = depositCmd.MarkFlagRequired("amount")

	var withdrawAmount string
	withdrawCmd := &cobra.Command{
		Use:   "withdraw <id>",
		Short: "Withdraw from a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/api/v1/wallets/"+args[0]+"/withdraw", map[string]any{"amount": withdrawAmount})
		},
	}
	withdrawCmd.Flags().StringVar(&withdrawAmount, "amount", "", "Amount to withdraw")
	_ = withdrawCmd.MarkFlagRequired("amount")

	var target, transferAmount string
	transferCmd := &cobra.Command{
		Use:   "transfer <source-id>",
		Short: "Transfer between wallets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/api/v1/wallets/"+args[0]+"/transfer", map[string]any{
				"target_wallet_id": target,
				"amount":           transferAmount,
			})
		},
	}
	transferCmd.Flags().StringVar(&target, "to", "", "Target wallet ID")
	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "Amount to transfer")
	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("amount")

	transactionsCmd := &cobra.Command{
		Use:   "transactions <id>",
		Short: "List a wallet's transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodGet, "/api/v1/wallets/"+args[0]+"/transactions", nil)
		},
	}

	cmd.AddCommand(getCmd, createCmd, balanceCmd, depositCmd, withdrawCmd, transferCmd, transactionsCmd)

	return cmd
}

// call performs an API request and prints the JSON response.
func call(method, path string, payload map[string]any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, raw)
	}

	printJSON(decoded)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to format response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
