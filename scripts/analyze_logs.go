package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Daily log digest for operators: payment and reconciliation alerts out of
// today's log files. Run from the repository root (`go run scripts/analyze_logs.go`).

type LogStats struct {
	TotalErrors        int
	LoginSuccess       int
	LoginFailures      int
	RejectedCallbacks  int
	ReconcileConflicts int
	LedgerAlerts       int
	InvalidTransitions int
	GatewayFailures    int
	OrdersPlaced       int
	ErrorPatterns      map[string]int
}

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{ErrorPatterns: make(map[string]int)}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Login failed") {
			stats.LoginFailures++
		}
		if strings.Contains(line, "Rejected ZaloPay callback") ||
			strings.Contains(line, "signature verification failed") {
			stats.RejectedCallbacks++
		}
		if strings.Contains(line, "ALERT:") {
			stats.LedgerAlerts++
		}
		if strings.Contains(line, "Invalid transition") {
			stats.InvalidTransitions++
		}
		if strings.Contains(line, "Payment initiation failed") ||
			strings.Contains(line, "Gateway query failed") {
			stats.GatewayFailures++
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "logged in successfully") {
			stats.LoginSuccess++
		}
		if strings.Contains(line, "placed for user") {
			stats.OrdersPlaced++
		}
		if strings.Contains(line, "dropped:") || strings.Contains(line, "Dropped") {
			stats.ReconcileConflicts++
		}
	}
}

// extractErrorPattern buckets error lines by their message prefix so the
// report shows which failure dominates.
func extractErrorPattern(line string, stats *LogStats) {
	idx := strings.Index(line, "ERROR: ")
	if idx < 0 {
		return
	}
	msg := line[idx+len("ERROR: "):]
	if colon := strings.Index(msg, ":"); colon > 0 && colon < 60 {
		msg = msg[:colon]
	} else if len(msg) > 60 {
		msg = msg[:60]
	}
	stats.ErrorPatterns[strings.TrimSpace(msg)]++
}

func printReport(stats *LogStats) {
	fmt.Println("=== FoodNest daily log digest ===")
	fmt.Println()
	fmt.Println("Activity:")
	fmt.Printf("   Successful logins: %d\n", stats.LoginSuccess)
	fmt.Printf("   Failed logins: %d\n", stats.LoginFailures)
	fmt.Printf("   Orders placed: %d\n", stats.OrdersPlaced)
	fmt.Println()
	fmt.Println("Payments:")
	fmt.Printf("   Rejected callbacks (bad MAC/signature): %d\n", stats.RejectedCallbacks)
	fmt.Printf("   Dropped conflicting reports: %d\n", stats.ReconcileConflicts)
	fmt.Printf("   Ledger alerts (manual follow-up!): %d\n", stats.LedgerAlerts)
	fmt.Printf("   Gateway failures: %d\n", stats.GatewayFailures)
	fmt.Println()
	fmt.Println("Errors:")
	fmt.Printf("   Total error lines: %d\n", stats.TotalErrors)
	fmt.Printf("   Invalid status transitions: %d\n", stats.InvalidTransitions)
	printTopErrors(stats.ErrorPatterns, 10)
}

func printTopErrors(errors map[string]int, limit int) {
	type entry struct {
		pattern string
		count   int
	}
	entries := make([]entry, 0, len(errors))
	for pattern, count := range errors {
		entries = append(entries, entry{pattern, count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for _, e := range entries {
		fmt.Printf("   %s: %d occurrences\n", e.pattern, e.count)
	}
}
