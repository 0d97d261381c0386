package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type row struct {
	Domain  string `json:"domain"`
	Percent int    `json:"percent"`
	Total   int    `json:"total"`
	Up      int    `json:"up"`
	Line    string `json:"line"`
}

func main() {
	verbose := flag.Bool("v", false, "show up/total counts per domain")
	flag.Parse()

	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://127.0.0.1:8080"
	}
	api = strings.TrimRight(api, "/")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(api + "/api/availability")
	if err != nil {
		fmt.Println("Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Println("API returned status:", resp.Status)
		os.Exit(1)
	}

	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		fmt.Println("Unexpected response:", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("No probes recorded yet.")
		return
	}
	printRows(os.Stdout, rows, *verbose)
}

func printRows(w io.Writer, rows []row, verbose bool) {
	for _, r := range rows {
		if verbose {
			fmt.Fprintf(w, "%s (%d/%d up)\n", r.Line, r.Up, r.Total)
			continue
		}
		fmt.Fprintln(w, r.Line)
	}
}
