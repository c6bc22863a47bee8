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
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "corebank-cli",
		Short: "CoreBank CLI tool",
		Long:  `A command line interface for interacting with the CoreBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CoreBank API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("COREBANK_TOKEN"), "Bearer token for authentication")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	createAccountCmd := &cobra.Command{
		Use:   "create-account [name] [initial-deposit]",
		Short: "Open a new account",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			deposit := "0"
			if len(args) == 2 {
				deposit = args[1]
			}
			createAccount(args[0], deposit)
		},
	}

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List your accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	}

	transferCmd := &cobra.Command{
		Use:   "transfer [from] [to] [amount]",
		Short: "Transfer money between accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			key, _ := cmd.Flags().GetString("idempotency-key")
			description, _ := cmd.Flags().GetString("description")
			executeTransfer(args[0], args[1], args[2], key, description)
		},
	}
	transferCmd.Flags().String("idempotency-key", "", "Idempotency key (required)")
	transferCmd.Flags().String("description", "", "Transfer description")
	transferCmd.MarkFlagRequired("idempotency-key")

	transactionsCmd := &cobra.Command{
		Use:   "transactions [account-number]",
		Short: "List an account's transaction history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			listTransactions(args[0], limit, offset)
		},
	}
	transactionsCmd.Flags().Int("limit", 20, "Maximum entries to return")
	transactionsCmd.Flags().Int("offset", 0, "Entries to skip")

	getTransferCmd := &cobra.Command{
		Use:   "get-transfer [transfer-id]",
		Short: "Show a transfer by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getTransfer(args[0])
		},
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	rootCmd.AddCommand(createAccountCmd, accountsCmd, transferCmd, getTransferCmd, transactionsCmd, consistencyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func doRequest(method, path string, payload any) (int, []byte) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody
}

func printJSON(body []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(out.String())
}

func createAccount(name, deposit string) {
	status, body := doRequest(http.MethodPost, "/accounts", map[string]string{
		"account_name":    name,
		"initial_deposit": deposit,
	})
	if status != http.StatusCreated {
		fmt.Printf("Failed to create account (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}
	printJSON(body)
}

func listAccounts() {
	status, body := doRequest(http.MethodGet, "/accounts", nil)
	if status != http.StatusOK {
		fmt.Printf("Failed to list accounts (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}
	printJSON(body)
}

func executeTransfer(from, to, amount, key, description string) {
	status, body := doRequest(http.MethodPost, "/accounts/transfer", map[string]string{
		"from_account_number": from,
		"to_account_number":   to,
		"amount":              amount,
		"description":         description,
		"idempotency_key":     key,
	})
	switch status {
	case http.StatusCreated:
		fmt.Println("Transfer completed")
	case http.StatusOK:
		fmt.Println("Transfer already completed (replayed)")
	default:
		fmt.Printf("Transfer failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}
	printJSON(body)
}

func getTransfer(id string) {
	status, body := doRequest(http.MethodGet, "/transfers/"+id, nil)
	if status != http.StatusOK {
		fmt.Printf("Failed to get transfer (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}
	printJSON(body)
}

func listTransactions(number string, limit, offset int) {
	path := fmt.Sprintf("/accounts/transactions?account_number=%s&limit=%d&offset=%d", number, limit, offset)
	status, body := doRequest(http.MethodGet, path, nil)
	if status != http.StatusOK {
		fmt.Printf("Failed to list transactions (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}
	printJSON(body)
}

func checkConsistency() {
	status, body := doRequest(http.MethodGet, "/ledger/consistency", nil)
	if status != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Consistency check PASSED")
	} else {
		fmt.Println("Consistency check FAILED: balances do not match entries")
	}
	fmt.Printf("Total balance: %v\nTotal entries: %v\n", result["total_balance"], result["total_entries"])
}
