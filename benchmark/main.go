// Package main provides a performance benchmarking tool for the vaxseries CLI.
// It generates synthetic series of increasing sizes, measures execution times
// per command, treating the first run as cold and averaging the rest as warm,
// and emits CSV output for performance analysis and documentation.
//
// Prerequisites:
// - vaxseries binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to place the generated series files (default: temp dir)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// Number of runs per command; the first is treated as cold.
const runsPerCommand = 4

// Synthetic series sizes in rows (days).
var seriesSizes = []int{365, 3650, 36500}

// BenchmarkResult holds the result of a benchmark run.
type BenchmarkResult struct {
	Rows     int
	Command  string
	ColdTime time.Duration
	WarmTime time.Duration
}

func main() {
	workDir := ""
	if len(os.Args) > 1 {
		workDir = os.Args[1]
	} else {
		var err error
		workDir, err = os.MkdirTemp("", "vaxseries-bench-*")
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create work dir:", err)
			os.Exit(1)
		}
		defer func() { _ = os.RemoveAll(workDir) }()
	}

	if _, err := exec.LookPath("vaxseries"); err != nil {
		fmt.Fprintln(os.Stderr, "vaxseries binary not found in PATH")
		os.Exit(1)
	}

	var results []BenchmarkResult
	for _, rows := range seriesSizes {
		dataPath := filepath.Join(workDir, fmt.Sprintf("data_%d.csv", rows))
		if err := generateSeries(dataPath, rows); err != nil {
			fmt.Fprintln(os.Stderr, "cannot generate series:", err)
			os.Exit(1)
		}

		commands := [][2]string{
			{"explore", ""},
			{"fix ramp", "ramp"},
			{"fix smooth", "smooth"},
			{"fix factual", "factual"},
		}
		for _, c := range commands {
			args := []string{"explore"}
			if c[1] != "" {
				args = []string{"fix", c[1]}
			}
			args = append(args, dataPath, "--provenance", "none", "--color", "no")

			result, err := benchmarkCommand(rows, c[0], args)
			if err != nil {
				fmt.Fprintf(os.Stderr, "benchmark %q on %d rows failed: %v\n", c[0], rows, err)
				continue
			}
			results = append(results, result)
		}
	}

	if err := writeResults(os.Stdout, results); err != nil {
		fmt.Fprintln(os.Stderr, "cannot write results:", err)
		os.Exit(1)
	}
}

// generateSeries writes a synthetic series: a long zero run ending in the
// recorded jump shape, so the fix commands have real work to do.
func generateSeries(path string, rows int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "vaccinated_pct"}); err != nil {
		return err
	}
	end := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := rows - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i)
		value := "0"
		if i == 0 {
			value = "10.13"
		}
		if err := writer.Write([]string{date.Format("2006-01-02"), value}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// benchmarkCommand runs one command repeatedly and splits cold from warm times.
func benchmarkCommand(rows int, name string, args []string) (BenchmarkResult, error) {
	var cold time.Duration
	var warmTotal time.Duration
	warmRuns := 0

	for i := 0; i < runsPerCommand; i++ {
		start := time.Now()
		cmd := exec.Command("vaxseries", args...)
		if err := cmd.Run(); err != nil {
			return BenchmarkResult{}, err
		}
		elapsed := time.Since(start)
		if i == 0 {
			cold = elapsed
		} else {
			warmTotal += elapsed
			warmRuns++
		}
	}

	return BenchmarkResult{
		Rows:     rows,
		Command:  name,
		ColdTime: cold,
		WarmTime: warmTotal / time.Duration(warmRuns),
	}, nil
}

// writeResults emits the benchmark table as CSV.
func writeResults(w *os.File, results []BenchmarkResult) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"rows", "command", "cold", "warm_avg"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			strconv.Itoa(r.Rows),
			r.Command,
			r.ColdTime.String(),
			r.WarmTime.String(),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
