// Command gocred-loadtest seeds accounts and measures login and token
// verification throughput against Redis (or an embedded miniredis when no
// address is given).
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goCred "github.com/MrEthical07/goCred"
)

func main() {
	var (
		users       = flag.Int("users", 1000, "number of accounts to seed")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		ops         = flag.Int("ops", 20000, "operations per phase (login + authenticate)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	)
	flag.Parse()

	if *users <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var cleanup func()
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		cleanup = mr.Close
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		fmt.Printf("using redis at %s\n", addr)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() {
		_ = client.Close()
		if cleanup != nil {
			cleanup()
		}
	}()

	// Minimum-cost hashing: the target of the measurement is store and token
	// throughput, not Argon2.
	cfg := goCred.DefaultConfig()
	cfg.Password = goCred.PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}

	engine, err := goCred.New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeding %d accounts...\n", *users)
	startSeed := time.Now()

	usernames := make([]string, *users)
	seedWorkers(*concurrency, *users, func(i int) {
		username := fmt.Sprintf("loadtest-user-%06d", i)
		usernames[i] = username
		if err := engine.Register(ctx, username, "loadtest-password"); err != nil {
			fmt.Fprintf(os.Stderr, "seed register %s: %v\n", username, err)
			os.Exit(1)
		}
	})
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	tokens := make([]string, *users)
	runPhase("login", *ops, *concurrency, func(r *rand.Rand) error {
		i := r.Intn(*users)
		result, err := engine.Login(ctx, usernames[i], "loadtest-password")
		if err != nil {
			return err
		}
		tokens[i] = result.Token
		return nil
	})

	// Make sure every account holds a token before the verify phase.
	for i, tok := range tokens {
		if tok == "" {
			result, err := engine.Login(ctx, usernames[i], "loadtest-password")
			if err != nil {
				fmt.Fprintf(os.Stderr, "backfill login: %v\n", err)
				os.Exit(1)
			}
			tokens[i] = result.Token
		}
	}

	runPhase("authenticate", *ops, *concurrency, func(r *rand.Rand) error {
		_, err := engine.Authenticate(ctx, tokens[r.Intn(*users)])
		return err
	})

	snap := engine.MetricsSnapshot()
	fmt.Printf("engine counters: logins=%d rejected=%d\n",
		snap.Counters[goCred.MetricLoginSuccess],
		snap.Counters[goCred.MetricTokenRejected],
	)
}

func seedWorkers(concurrency, n int, fn func(i int)) {
	var (
		next int64 = -1
		wg   sync.WaitGroup
	)
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= n {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}

func runPhase(name string, ops, concurrency int, fn func(r *rand.Rand) error) {
	fmt.Printf("phase %s: %d ops, %d workers\n", name, ops, concurrency)

	var (
		failures  int64
		remaining = int64(ops)
		latencies = make([][]time.Duration, concurrency)
		wg        sync.WaitGroup
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(int64(w) + time.Now().UnixNano()))
			for atomic.AddInt64(&remaining, -1) >= 0 {
				opStart := time.Now()
				if err := fn(r); err != nil {
					atomic.AddInt64(&failures, 1)
					continue
				}
				latencies[w] = append(latencies[w], time.Since(opStart))
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	var all []time.Duration
	for _, l := range latencies {
		all = append(all, l...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	fmt.Printf("  %d ok, %d failed in %s (%.0f ops/s)\n",
		len(all), failures, elapsed.Round(time.Millisecond),
		float64(len(all))/elapsed.Seconds(),
	)
	if len(all) > 0 {
		fmt.Printf("  p50=%s p95=%s p99=%s max=%s\n",
			percentile(all, 0.50), percentile(all, 0.95),
			percentile(all, 0.99), all[len(all)-1],
		)
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
