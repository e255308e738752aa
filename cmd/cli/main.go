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
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "budgeteer-cli",
		Short: "Budgeteer CLI tool",
		Long:  `A command line interface for interacting with the Budgeteer API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Budgeteer API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Budget commands
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget operations",
	}

	budgetGetCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get a budget by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/budgets/" + args[0])
		},
	}

	budgetListCmd := &cobra.Command{
		Use:   "list [participant-id]",
		Short: "List budgets of a participant",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/budgets?participant_id=" + args[0])
		},
	}

	budgetCmd.AddCommand(budgetGetCmd, budgetListCmd)
	rootCmd.AddCommand(budgetCmd)

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	accountGetCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/accounts/" + args[0])
		},
	}

	accountListCmd := &cobra.Command{
		Use:   "list [budget-id]",
		Short: "List accounts of a budget",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/accounts?budget_id=" + args[0])
		},
	}

	accountCmd.AddCommand(accountGetCmd, accountListCmd)
	rootCmd.AddCommand(accountCmd)

	// Transfer command
	var (
		fromAccount string
		toAccount   string
		amountCents float64
		categoryID  string
	)

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/transfers", map[string]any{
				"from_account_id": fromAccount,
				"to_account_id":   toAccount,
				"amount_cents":    amountCents,
				"category_id":     categoryID,
			})
		},
	}

	transferCmd.Flags().StringVar(&fromAccount, "from", "", "Source account ID")
	transferCmd.Flags().StringVar(&toAccount, "to", "", "Destination account ID")
	transferCmd.Flags().Float64Var(&amountCents, "amount", 0, "Amount in cents")
	transferCmd.Flags().StringVar(&categoryID, "category", "", "Transfer category ID")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")
	transferCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(transferCmd)

	// Bill commands
	billCmd := &cobra.Command{
		Use:   "bill",
		Short: "Credit card bill operations",
	}

	billGetCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get a bill by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/bills/" + args[0])
		},
	}

	var (
		payAccount  string
		payBudget   string
		payAmount   float64
		payPaidBy   string
		payCategory string
	)

	billPayCmd := &cobra.Command{
		Use:   "pay [id]",
		Short: "Pay a closed bill from an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/bills/"+args[0]+"/pay", map[string]any{
				"account_id":   payAccount,
				"budget_id":    payBudget,
				"amount_cents": payAmount,
				"paid_by":      payPaidBy,
				"category_id":  payCategory,
			})
		},
	}

	billPayCmd.Flags().StringVar(&payAccount, "account", "", "Paying account ID")
	billPayCmd.Flags().StringVar(&payBudget, "budget", "", "Budget ID")
	billPayCmd.Flags().Float64Var(&payAmount, "amount", 0, "Amount in cents")
	billPayCmd.Flags().StringVar(&payPaidBy, "paid-by", "", "Paying user ID")
	billPayCmd.Flags().StringVar(&payCategory, "category", "", "Expense category ID")
	billPayCmd.MarkFlagRequired("account")
	billPayCmd.MarkFlagRequired("budget")
	billPayCmd.MarkFlagRequired("amount")
	billPayCmd.MarkFlagRequired("paid-by")
	billPayCmd.MarkFlagRequired("category")

	billCmd.AddCommand(billGetCmd, billPayCmd)
	rootCmd.AddCommand(billCmd)

	// Health command
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			get("/ready")
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func post(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
