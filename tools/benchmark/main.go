package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/dto"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/pkg/client"
)

// participant is one identity that the run tries to check in many times
type participant struct {
	label string
	req   dto.ManualAttendanceRequest
}

// ParticipantStats counts the outcomes seen for one participant
type ParticipantStats struct {
	Label           string
	Recorded        int
	AlreadyRecorded int
	Failed          int
	Errors          []string
}

// RunStats aggregates a whole run
type RunStats struct {
	EventID      string
	StartTime    time.Time
	Duration     time.Duration
	Requests     int
	Participants []*ParticipantStats
	Latencies    []time.Duration
}

// Violations lists participants that were recorded more than once
func (s *RunStats) Violations() []*ParticipantStats {
	var out []*ParticipantStats
	for _, p := range s.Participants {
		if p.Recorded > 1 {
			out = append(out, p)
		}
	}
	return out
}

// Failed counts requests that ended in an error
func (s *RunStats) Failed() int {
	total := 0
	for _, p := range s.Participants {
		total += p.Failed
	}
	return total
}

// Passed reports whether no participant was recorded twice
func (s *RunStats) Passed() bool {
	return len(s.Violations()) == 0
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Retries would hide contention, so every attempt is sent exactly once
	c := client.New(cfg.APIURL, client.WithAPIKey(cfg.APIKey), client.WithRetry(0, 0))

	fmt.Printf("Target: %s (event: %s)\n", cfg.APIURL, cfg.EventID)
	fmt.Printf("Participants: %d, attempts each: %d, concurrency: %d\n",
		len(cfg.Members)+len(cfg.Names), cfg.Attempts, cfg.Concurrency)

	stats := run(ctx, c, cfg)

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("BENCHMARK RESULTS")
	fmt.Println(strings.Repeat("=", 80))
	printRunStats(stats)

	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, stats); err != nil {
			fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
		} else {
			fmt.Printf("\n✓ Report written to: %s\n", cfg.OutputFile)
		}
	}

	if !stats.Passed() {
		os.Exit(2)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func participants(cfg *Config) []participant {
	var out []participant
	for _, id := range cfg.Members {
		out = append(out, participant{
			label: "member " + id,
			req:   dto.ManualAttendanceRequest{MemberID: id, Status: string(domain.StatusPresent), Notes: "benchmark"},
		})
	}
	for _, name := range cfg.Names {
		out = append(out, participant{
			label: "name " + name,
			req:   dto.ManualAttendanceRequest{Name: name, Status: string(domain.StatusPresent), Notes: "benchmark"},
		})
	}
	return out
}

// run fires every attempt for every participant through a bounded pool and tallies outcomes
func run(ctx context.Context, c *client.Client, cfg *Config) *RunStats {
	ps := participants(cfg)
	stats := &RunStats{
		EventID:   cfg.EventID,
		StartTime: time.Now(),
	}

	var mu sync.Mutex
	byLabel := make(map[string]*ParticipantStats, len(ps))
	for _, p := range ps {
		s := &ParticipantStats{Label: p.label}
		byLabel[p.label] = s
		stats.Participants = append(stats.Participants, s)
	}

	pool := pond.NewPool(cfg.Concurrency, pond.WithContext(ctx))
	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		for _, p := range ps {
			pool.Submit(func() {
				reqCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()

				start := time.Now()
				resp, err := c.RecordManual(reqCtx, cfg.EventID, p.req)
				latency := time.Since(start)

				mu.Lock()
				defer mu.Unlock()
				s := byLabel[p.label]
				stats.Requests++
				stats.Latencies = append(stats.Latencies, latency)
				switch {
				case err != nil:
					s.Failed++
					if len(s.Errors) < 3 {
						s.Errors = append(s.Errors, err.Error())
					}
				case resp.Outcome == domain.OutcomeRecorded:
					s.Recorded++
				default:
					s.AlreadyRecorded++
				}
			})
		}
	}
	pool.StopAndWait()

	stats.Duration = time.Since(stats.StartTime)
	sort.Slice(stats.Participants, func(i, j int) bool {
		return stats.Participants[i].Label < stats.Participants[j].Label
	})
	return stats
}

func printRunStats(stats *RunStats) {
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Event:        %s\n", stats.EventID)
	fmt.Printf("Start Time:   %s\n", stats.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration:     %s\n", formatDuration(stats.Duration))
	fmt.Printf("Requests:     %d (%s)\n", stats.Requests, formatRate(stats.Requests, stats.Duration))
	fmt.Printf("Failed:       %d (%s)\n", stats.Failed(), percentageString(stats.Failed(), stats.Requests))
	fmt.Println()

	latencies := append([]time.Duration(nil), stats.Latencies...)
	fmt.Printf("Latency p50:  %s\n", formatDuration(percentile(latencies, 50)))
	fmt.Printf("Latency p95:  %s\n", formatDuration(percentile(latencies, 95)))
	fmt.Printf("Latency p99:  %s\n", formatDuration(percentile(latencies, 99)))
	fmt.Println()

	for _, p := range stats.Participants {
		fmt.Printf("  %s %s\n", statusEmoji(p.Recorded <= 1, p.Failed), p.Label)
		fmt.Printf("    Recorded:         %d\n", p.Recorded)
		fmt.Printf("    Already recorded: %d\n", p.AlreadyRecorded)
		if p.Failed > 0 {
			fmt.Printf("    Failed:           %d\n", p.Failed)
			for _, e := range p.Errors {
				fmt.Printf("      %s\n", e)
			}
		}
	}
	fmt.Println()

	if stats.Passed() {
		fmt.Println("✅ Every participant was recorded at most once")
	} else {
		fmt.Printf("❌ %d participant(s) were recorded more than once\n", len(stats.Violations()))
	}
	fmt.Println(strings.Repeat("-", 80))
}

// writeMarkdownReport writes a markdown report of the run
func writeMarkdownReport(filepath string, stats *RunStats) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	latencies := append([]time.Duration(nil), stats.Latencies...)

	var b strings.Builder
	fmt.Fprintf(&b, "# Check-in Benchmark\n\n")
	fmt.Fprintf(&b, "- **Event:** `%s`\n", stats.EventID)
	fmt.Fprintf(&b, "- **Started:** %s\n", stats.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Duration:** %s\n", formatDuration(stats.Duration))
	fmt.Fprintf(&b, "- **Requests:** %d (%s)\n", stats.Requests, formatRate(stats.Requests, stats.Duration))
	fmt.Fprintf(&b, "- **Latency:** p50 %s, p95 %s, p99 %s\n\n",
		formatDuration(percentile(latencies, 50)),
		formatDuration(percentile(latencies, 95)),
		formatDuration(percentile(latencies, 99)))

	fmt.Fprintf(&b, "| Participant | Recorded | Already recorded | Failed | |\n")
	fmt.Fprintf(&b, "|---|---:|---:|---:|---|\n")
	for _, p := range stats.Participants {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %s |\n",
			p.Label, p.Recorded, p.AlreadyRecorded, p.Failed, statusEmoji(p.Recorded <= 1, p.Failed))
	}

	_, err = file.WriteString(b.String())
	return err
}
