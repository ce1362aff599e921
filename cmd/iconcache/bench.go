package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sanshu/iconcache/types"
)

// benchProvider answers every search after a fixed delay and counts calls.
type benchProvider struct {
	delay time.Duration
	total int
	calls atomic.Int64
}

func (p *benchProvider) SearchIcons(ctx context.Context, q types.ProviderQuery) (types.RawSearchResult, error) {
	p.calls.Add(1)
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return types.RawSearchResult{}, ctx.Err()
	}

	res := types.RawSearchResult{Count: p.total}
	start := (q.Page - 1) * q.PageSize
	for i := start; i < min(start+q.PageSize, p.total); i++ {
		res.Icons = append(res.Icons, types.RawIcon{
			ID:      uint64(i + 1),
			Name:    fmt.Sprintf("%s-%d", q.Query, i+1),
			ShowSVG: fmt.Sprintf(`<svg id="%d"/>`, i+1),
		})
	}
	return res, nil
}

func (p *benchProvider) FetchContent(context.Context, types.ContentQuery) (types.RawContent, error) {
	p.calls.Add(1)
	return types.RawContent{}, types.ErrNotFound
}

type benchFlags struct {
	callers int
	rounds  int
	hitOps  int
	delay   time.Duration
}

func newBenchCmd(a *app) *cobra.Command {
	var f benchFlags

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure request coalescing against a slow in-process provider",
		Long: `Bench fires --callers identical searches at once, --rounds times,
against a provider that takes --delay per call. Every round should cost
exactly one provider call. It then replays the cached pages --hit-ops
times to measure the hit path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			provider := &benchProvider{delay: f.delay, total: 120}

			svc, err := a.newService(provider)
			if err != nil {
				return err
			}
			defer svc.Close()

			tag := uuid.NewString()[:8]

			fmt.Fprintln(out, "\n================ ICON CACHE BENCHMARK =================")
			fmt.Fprintln(out, "Run          :", tag)
			fmt.Fprintln(out, "Callers      :", f.callers)
			fmt.Fprintln(out, "Rounds       :", f.rounds)
			fmt.Fprintln(out, "Provider lag :", f.delay)
			fmt.Fprintln(out, "---------------------------------")

			var failures atomic.Int64
			start := time.Now()
			for r := 0; r < f.rounds; r++ {
				params := types.SearchParams{Query: fmt.Sprintf("bench %s %d", tag, r)}

				var wg sync.WaitGroup
				wg.Add(f.callers)
				for i := 0; i < f.callers; i++ {
					go func() {
						defer wg.Done()
						if _, err := svc.Search(ctx, params); err != nil {
							failures.Add(1)
						}
					}()
				}
				wg.Wait()
			}
			coalesce := time.Since(start)

			start = time.Now()
			for i := 0; i < f.hitOps; i++ {
				params := types.SearchParams{Query: fmt.Sprintf("bench %s %d", tag, i%max(f.rounds, 1))}
				if _, err := svc.Search(ctx, params); err != nil {
					failures.Add(1)
				}
			}
			hits := time.Since(start)

			st := svc.Stats()
			fmt.Fprintln(out, "\n================ RESULTS =================")
			fmt.Fprintf(out, "Requests         : %d\n", f.callers*f.rounds+f.hitOps)
			fmt.Fprintf(out, "Failures         : %d\n", failures.Load())
			fmt.Fprintf(out, "Provider calls   : %d (expected %d)\n", provider.calls.Load(), f.rounds)
			fmt.Fprintf(out, "Shared fetches   : %d\n", st.Counters.SharedFetches)
			fmt.Fprintf(out, "Coalesced time   : %v\n", coalesce)
			fmt.Fprintf(out, "Hit path time    : %v\n", hits)
			if f.hitOps > 0 && hits > 0 {
				fmt.Fprintf(out, "Hit throughput   : %.2f ops/sec\n", float64(f.hitOps)/hits.Seconds())
			}
			fmt.Fprintln(out, "\n================ CACHE =================")
			fmt.Fprintf(out, "Entries          : %d (valid %d, expired %d)\n", st.TotalEntries, st.ValidEntries, st.ExpiredEntries)
			fmt.Fprintf(out, "Memory           : %d / %d bytes\n", st.MemoryUsageBytes, st.MaxMemoryBytes)
			fmt.Fprintf(out, "Hits / Misses    : %d / %d\n", st.Counters.Hits, st.Counters.Misses)
			fmt.Fprintf(out, "Evictions        : %d\n", st.Counters.Evictions)
			fmt.Fprintln(out, "=========================================")
			return nil
		},
	}

	cmd.Flags().IntVar(&f.callers, "callers", 200, "Concurrent identical searches per round")
	cmd.Flags().IntVar(&f.rounds, "rounds", 5, "Number of distinct queries")
	cmd.Flags().IntVar(&f.hitOps, "hit-ops", 100000, "Cached searches replayed after the rounds")
	cmd.Flags().DurationVar(&f.delay, "delay", 100*time.Millisecond, "Simulated provider latency")
	return cmd
}
