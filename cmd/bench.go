package main

import (
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
	"github.com/1F47E/geo-index-kdtree/pkg/kdtree"
	"github.com/1F47E/geo-index-kdtree/pkg/logger"
	"github.com/1F47E/geo-index-kdtree/pkg/rtree"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare the KD-tree with an R-tree on random data",
	Long: `Generate random places, load them into the KD-tree and into an R-tree,
then run the same box and radius queries against both from a pool of workers.
Results are compared query by query and mismatches are counted.`,
	RunE: runBench,
}

var (
	benchPoints  int
	benchQueries int
	benchWorkers int
	benchRadius  float64
	benchBoxSize float64
	benchSeed    int64
)

func init() {
	benchCmd.Flags().IntVarP(&benchPoints, "points", "n", 100000, "Number of points to generate")
	benchCmd.Flags().IntVarP(&benchQueries, "queries", "q", 1000, "Number of queries per query type")
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	benchCmd.Flags().Float64VarP(&benchRadius, "radius", "r", 50.0, "Radius in km for radius queries")
	benchCmd.Flags().Float64Var(&benchBoxSize, "box-size", 1.0, "Box size in degrees for box queries")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 0, "Random seed (0 picks one from the clock)")
}

// BenchmarkResult summarises one query type against one index.
type BenchmarkResult struct {
	Index         string
	QueryType     string
	TotalQueries  int
	TotalDuration time.Duration
	AvgDuration   time.Duration
	QueriesPerSec float64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	TotalResults  int64
	AvgResults    float64
}

// runQueries fans query indexes 0..n-1 out to workers. query returns the number of results.
func runQueries(index, queryType string, n, workers int, query func(i int) int) BenchmarkResult {
	var (
		totalResults int64
		minDuration  = time.Hour
		maxDuration  time.Duration
		totalDur     time.Duration
		mu           sync.Mutex
	)

	startTime := time.Now()

	queryCh := make(chan int, n)
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			for i := range queryCh {
				queryStart := time.Now()
				found := query(i)
				queryDuration := time.Since(queryStart)

				atomic.AddInt64(&totalResults, int64(found))

				mu.Lock()
				totalDur += queryDuration
				minDuration = min(minDuration, queryDuration)
				maxDuration = max(maxDuration, queryDuration)
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < n; i++ {
		queryCh <- i
	}
	close(queryCh)

	wg.Wait()
	totalDuration := time.Since(startTime)

	res := BenchmarkResult{
		Index:         index,
		QueryType:     queryType,
		TotalQueries:  n,
		TotalDuration: totalDuration,
		MinDuration:   minDuration,
		MaxDuration:   maxDuration,
		TotalResults:  totalResults,
	}
	if n > 0 {
		res.AvgDuration = totalDur / time.Duration(n)
		res.QueriesPerSec = float64(n) / totalDuration.Seconds()
		res.AvgResults = float64(totalResults) / float64(n)
	} else {
		res.MinDuration = 0
	}
	return res
}

// countMismatches reports how many queries returned different id sets.
func countMismatches(a, b [][]string) int {
	mismatches := 0
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			mismatches++
		}
	}
	return mismatches
}

func sortedRecordIDs(records []kdtree.Record[string, map[string]any]) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID()
	}
	slices.Sort(out)
	return out
}

func sortedEntryIDs(entries []rtree.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	slices.Sort(out)
	return out
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchWorkers < 1 {
		return fmt.Errorf("workers must be positive, got %d", benchWorkers)
	}
	if err := checkCount("points", benchPoints); err != nil {
		return err
	}
	if err := checkCount("queries", benchQueries); err != nil {
		return err
	}
	log := logger.L()
	s := seedOrClock(benchSeed)

	printTitle("KD-tree vs R-tree")
	fmt.Println(infoStyle.Render(fmt.Sprintf("Generating %s points (seed %d)...", count(benchPoints), s)))
	places := generateRandomPlaces(benchPoints, s)

	kd := kdtree.New[string, map[string]any]()
	start := time.Now()
	for _, p := range places {
		rec, err := p.Record()
		if err != nil {
			return err
		}
		if err := kd.Insert(rec); err != nil {
			return err
		}
	}
	kdLoad := time.Since(start)

	start = time.Now()
	kd.Balance()
	kdBalance := time.Since(start)

	rt := rtree.NewIndex()
	start = time.Now()
	for _, p := range places {
		rec, _ := p.Record()
		rt.Insert(rec.ID(), rec.Point())
	}
	rtLoad := time.Since(start)

	log.Info("indexes loaded", "points", len(places), "kdtree", kd.Size(), "rtree", rt.Size())
	printStats("Load", [][2]string{
		{"KD-tree insert", kdLoad.String()},
		{"KD-tree balance", kdBalance.String()},
		{"KD-tree height", count(kd.Height())},
		{"R-tree insert", rtLoad.String()},
	})

	r := rand.New(rand.NewSource(s + 1))
	boxes := make([]geo.BoundingBox, benchQueries)
	centers := make([]geo.Point, benchQueries)
	for i := range boxes {
		lat := -90 + r.Float64()*(180-benchBoxSize)
		lon := -180 + r.Float64()*(360-benchBoxSize)
		box, err := geo.BoxFromCoords(lat, lon, lat+benchBoxSize, lon+benchBoxSize)
		if err != nil {
			return fmt.Errorf("box size %v: %w", benchBoxSize, err)
		}
		boxes[i] = box
		centers[i] = geo.MustPoint(r.Float64()*180-90, r.Float64()*360-180)
	}

	kdBox := make([][]string, benchQueries)
	rtBox := make([][]string, benchQueries)
	kdRadius := make([][]string, benchQueries)
	rtRadius := make([][]string, benchQueries)

	var queryErrors atomic.Int64
	results := []BenchmarkResult{
		runQueries("kdtree", "box", benchQueries, benchWorkers, func(i int) int {
			kdBox[i] = sortedRecordIDs(kd.FindInRange(boxes[i]))
			return len(kdBox[i])
		}),
		runQueries("rtree", "box", benchQueries, benchWorkers, func(i int) int {
			entries, err := rt.SearchBox(boxes[i])
			if err != nil {
				queryErrors.Add(1)
				log.Debug("box query failed", "box", boxes[i].String(), "error", err)
			}
			rtBox[i] = sortedEntryIDs(entries)
			return len(rtBox[i])
		}),
		runQueries("kdtree", "radius", benchQueries, benchWorkers, func(i int) int {
			kdRadius[i] = sortedRecordIDs(kd.FindNearestNeighbors(centers[i], benchRadius))
			return len(kdRadius[i])
		}),
		runQueries("rtree", "radius", benchQueries, benchWorkers, func(i int) int {
			entries, err := rt.SearchRadius(centers[i], benchRadius)
			if err != nil {
				queryErrors.Add(1)
				log.Debug("radius query failed", "center", centers[i].String(), "error", err)
			}
			rtRadius[i] = sortedEntryIDs(entries)
			return len(rtRadius[i])
		}),
	}

	for _, res := range results {
		printStats(fmt.Sprintf("%s %s queries", res.Index, res.QueryType), [][2]string{
			{"Total queries", count(res.TotalQueries)},
			{"Total time", res.TotalDuration.String()},
			{"Average time", res.AvgDuration.String()},
			{"Min / max", fmt.Sprintf("%v / %v", res.MinDuration, res.MaxDuration)},
			{"Queries/second", count(int(res.QueriesPerSec))},
			{"Total results", count(int(res.TotalResults))},
			{"Avg results/query", fmt.Sprintf("%.1f", res.AvgResults)},
		})
	}

	boxMismatches := countMismatches(kdBox, rtBox)
	radiusMismatches := countMismatches(kdRadius, rtRadius)
	printStats("Agreement", [][2]string{
		{"Box mismatches", count(boxMismatches)},
		{"Radius mismatches", count(radiusMismatches)},
		{"Query errors", count(int(queryErrors.Load()))},
		{"Workers", count(benchWorkers)},
		{"CPU cores", count(runtime.NumCPU())},
	})
	if radiusMismatches > 0 {
		fmt.Println(dimStyle.Render("Radius pruning compares degrees with kilometres, so queries near the poles can disagree."))
	}
	return nil
}
