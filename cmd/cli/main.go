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
	ownerID string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ammoledger-cli",
		Short: "Ammoledger CLI tool",
		Long:  `A command line interface for interacting with the ammoledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ammoledger API")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "", "Owner ID sent as X-Owner-ID")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	verifyCmd := &cobra.Command{
		Use:   "verify-chain",
		Short: "Replay the owner's ledger chain and report integrity",
		Run: func(cmd *cobra.Command, args []string) {
			verifyChain()
		},
	}

	balancesCmd := &cobra.Command{
		Use:   "balances",
		Short: "Show current balances for every active ammunition type",
		Run: func(cmd *cobra.Command, args []string) {
			showBalances()
		},
	}

	appendCmd := &cobra.Command{
		Use:   "append <type-id> <event-type> <quantity> <date>",
		Short: "Append an inventory movement",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			appendEvent(args[0], args[1], args[2], args[3])
		},
	}

	rootCmd.AddCommand(verifyCmd, balancesCmd, appendCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func doRequest(method, path string, body []byte) []byte {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	if ownerID != "" {
		req.Header.Set("X-Owner-ID", ownerID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	return respBody
}

func verifyChain() {
	body := doRequest(http.MethodGet, "/api/v1/integrity", nil)

	var report struct {
		Valid   bool `json:"valid"`
		Events  int  `json:"events"`
		Results []struct {
			EventID    int64  `json:"event_id"`
			EventType  string `json:"event_type"`
			HashValid  bool   `json:"hash_valid"`
			ChainValid bool   `json:"chain_valid"`
			Valid      bool   `json:"valid"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if report.Valid {
		fmt.Printf("Chain VALID (%d events)\n", report.Events)
		return
	}

	fmt.Printf("Chain INVALID (%d events)\n", report.Events)
	for _, r := range report.Results {
		if !r.Valid {
			fmt.Printf("  event %d (%s): hash_valid=%v chain_valid=%v\n",
				r.EventID, r.EventType, r.HashValid, r.ChainValid)
		}
	}
	os.Exit(1)
}

func showBalances() {
	body := doRequest(http.MethodGet, "/api/v1/balances", nil)

	var balances []struct {
		Type struct {
			ID       string `json:"id"`
			Category string `json:"category"`
			Caliber  string `json:"caliber"`
		} `json:"type"`
		Balance       int64   `json:"balance"`
		LastEventDate *string `json:"last_event_date"`
	}
	if err := json.Unmarshal(body, &balances); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, b := range balances {
		last := "-"
		if b.LastEventDate != nil {
			last = *b.LastEventDate
		}
		fmt.Printf("%-26s  %s / %s  balance=%d  last=%s\n",
			b.Type.ID, b.Type.Category, b.Type.Caliber, b.Balance, last)
	}
}

func appendEvent(typeID, eventType, quantity, date string) {
	payload, err := json.Marshal(map[string]any{
		"ammunition_type_id": typeID,
		"event_type":         eventType,
		"quantity":           json.RawMessage(quantity),
		"event_date":         date,
	})
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	body := doRequest(http.MethodPost, "/api/v1/events", payload)

	var event struct {
		ID         int64  `json:"id"`
		Quantity   int64  `json:"quantity"`
		RecordHash string `json:"record_hash"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Appended event %d (signed quantity %d)\nhash: %s\n", event.ID, event.Quantity, event.RecordHash)
}
