package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

type check struct {
	name    string
	method  string
	path    string
	payload any
	status  int
}

func main() {
	if v := os.Getenv("SMOKE_BASE_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test against", baseURL)

	checks := []check{
		{"health", http.MethodGet, "/health", nil, http.StatusOK},
		{"page list", http.MethodGet, "/api/pages", nil, http.StatusOK},
		{"home page", http.MethodGet, "/", nil, http.StatusOK},
		{"relationships layout", http.MethodGet, "/api/pages/relationships/layout", nil, http.StatusOK},
		{"insights bars", http.MethodPost, "/api/pages/insights/callbacks",
			map[string]any{"output": "users_barplot.figure", "inputs": map[string]any{"dummy-input": "dummy"}}, http.StatusOK},
		{"polarization percentiles", http.MethodGet, "/api/pages/polarization/figures/edge_bet_percentiles_plot", nil, http.StatusOK},
		{"faq toggle", http.MethodPost, "/api/pages/polarization/callbacks",
			map[string]any{"output": "faq_collapse.is_open", "inputs": map[string]any{"faq_toggle": 1}, "state": map[string]any{"faq_collapse": false}}, http.StatusOK},
		{"default network", http.MethodPost, "/api/pages/relationships/callbacks",
			map[string]any{"output": "network-graph.figure"}, http.StatusOK},
		{"unknown keyword", http.MethodPost, "/api/pages/relationships/callbacks",
			map[string]any{"output": "network-graph.figure", "inputs": map[string]any{"keyword-dropdown": "no-such-keyword"}}, http.StatusNotFound},
		{"bar png", http.MethodGet, "/api/pages/polarization/figures/keywords_barplot?format=png", nil, http.StatusOK},
	}

	for i, c := range checks {
		fmt.Printf("%d. %s...\n", i+1, c.name)
		if !sendRequest(c.method, c.path, c.payload, c.status) {
			fmt.Printf("FAILED: %s\n", c.name)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", c.name)
	}
}

func sendRequest(method, endpoint string, payload any, want int) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		fmt.Printf("Unexpected status %d (want %d): %s\n", resp.StatusCode, want, respBody)
		return false
	}
	if resp.Header.Get("X-Request-ID") == "" {
		fmt.Println("Missing X-Request-ID header")
		return false
	}
	return true
}
