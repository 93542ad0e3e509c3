// Package cli implements the plain-text progress banner shown around a
// load: a start banner, a periodic elapsed-time tick, and a closing
// statistics block.
package cli

import (
	"fmt"
	"time"

	"github.com/paratab/paratab/internal/bytesutil"
)

// Reporter prints a start banner, a periodic elapsed-time tick while a
// load runs, and a closing statistics block, mirroring
// startReporting/stopReporting/printStatus.
type Reporter struct {
	verbose    bool
	stopTicker chan struct{}
}

// NewReporter constructs a Reporter. When verbose is false every method
// is a no-op.
func NewReporter(verbose bool) *Reporter {
	return &Reporter{verbose: verbose}
}

// Banner prints the pre-load summary: input path, column count, worker
// count, and which CPU features Capabilities() reports as available.
func (r *Reporter) Banner(path string, numColumns, numThreads int) {
	if !r.verbose {
		return
	}
	fmt.Printf("\nInput:    %s\n", path)
	fmt.Printf("Columns:  %d\n", numColumns)
	fmt.Printf("Workers:  %d\n", numThreads)
	for _, c := range bytesutil.Capabilities() {
		state := "unavailable"
		if c.Available {
			state = "available"
		}
		fmt.Printf("CPU:      %s %s\n", c.Name, state)
	}
	fmt.Println()
}

// Start begins the periodic elapsed-time ticker, porting startReporting.
func (r *Reporter) Start() {
	if !r.verbose {
		return
	}
	r.stopTicker = make(chan struct{})
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fmt.Printf("\r\033[K[loading] Elapsed: %s", time.Since(startTime).Round(time.Second))
			case <-r.stopTicker:
				fmt.Println()
				return
			}
		}
	}()
}

// Stop halts the ticker, porting stopReporting.
func (r *Reporter) Stop() {
	if !r.verbose {
		return
	}
	close(r.stopTicker)
}

// Summary prints the closing statistics block, porting the
// "Statistics:" section of Indexer.Run.
func (r *Reporter) Summary(rows int, numColumns int, elapsed time.Duration) {
	if !r.verbose {
		return
	}
	fmt.Printf("\nStatistics:\n")
	fmt.Printf("  Rows:    %d\n", rows)
	fmt.Printf("  Columns: %d\n", numColumns)
	fmt.Printf("  Time:    %v\n", elapsed.Round(time.Millisecond))
	if elapsed.Seconds() > 0 {
		fmt.Printf("  Rate:    %.0f rows/sec\n", float64(rows)/elapsed.Seconds())
	}
}

// Error prints a single failure line.
func (r *Reporter) Error(err error) {
	if !r.verbose {
		return
	}
	fmt.Printf("  failed: %v\n", err)
}
