// Command catanylizer ranks settlement spots for a board document.
// It reads a board from a YAML/JSON file or deals a random one, prints
// the ranked intersections as a table or JSON, and can export the full
// report as zstd-compressed JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/export"
	"github.com/berpycasiano-dotcom/catanylizer/internal/geometry"
	"github.com/berpycasiano-dotcom/catanylizer/internal/score"
)

func main() {
	boardPath := flag.String("board", "", "board document to analyze (\"-\" reads stdin)")
	random := flag.Bool("random", false, "deal a random board instead of reading one")
	seed := flag.Int64("seed", 0, "seed for -random (0 picks one from the clock)")
	weight := flag.Float64("weight", 0.5, "resource diversity weight (>= 0)")
	size := flag.Float64("size", 1.0, "hex size for the layout (> 0)")
	top := flag.Int("top", 0, "print only the best N intersections (0 = all)")
	asJSON := flag.Bool("json", false, "print JSON instead of a table")
	outPath := flag.String("out", "", "write the full report here as zstd-compressed JSON")
	verify := flag.Bool("verify", false, "read the -out report back and check it")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// Logs go to stderr so -json output stays pipeable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *weight < 0 {
		slog.Error("weight must be >= 0", "weight", *weight)
		os.Exit(2)
	}
	if *size <= 0 {
		slog.Error("size must be > 0", "size", *size)
		os.Exit(2)
	}

	tiles, messages := loadBoard(*boardPath, *random, *seed)

	for _, m := range messages {
		slog.Warn("board pairing", "hex", m.Index, "message", m.Text)
	}

	hexes := board.StandardBoard()
	graph := geometry.BuildIntersections(hexes, *size, geometry.DefaultPrecision)
	slog.Debug("intersections built", "count", len(graph.Vertices))

	ranked, err := score.Rank(graph, tiles, *weight)
	if err != nil {
		slog.Error("ranking failed", "error", err)
		os.Exit(1)
	}

	shown := ranked
	if *top > 0 && *top < len(shown) {
		shown = shown[:*top]
	}

	if *asJSON {
		printJSON(*weight, *size, messages, shown)
	} else {
		printTable(shown)
	}

	if *outPath != "" {
		rep := export.NewReport(tiles, *weight, *size, messages, ranked)
		if err := export.Write(*outPath, rep); err != nil {
			slog.Error("report export failed", "path", *outPath, "error", err)
			os.Exit(1)
		}
		slog.Info("report written", "path", *outPath, "intersections", len(ranked))

		if *verify {
			loaded, err := export.Read(*outPath)
			if err != nil {
				slog.Error("report verification failed", "path", *outPath, "error", err)
				os.Exit(1)
			}
			if len(loaded.Intersections) != len(ranked) {
				slog.Error("report verification failed",
					"path", *outPath,
					"want", len(ranked),
					"got", len(loaded.Intersections),
				)
				os.Exit(1)
			}
			slog.Info("report verified", "path", *outPath)
		}
	}
}

// loadBoard resolves the three input modes: -board file, -board -, or
// -random. Exits with usage on bad flag combinations.
func loadBoard(path string, random bool, seed int64) (board.TileAssignment, []board.ValidationMessage) {
	if random && path != "" {
		slog.Error("pass either -board or -random, not both")
		os.Exit(2)
	}

	if random {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		slog.Info("dealing random board", "seed", seed)
		tiles := board.RandomAssignment(seed)
		return tiles, board.Validate(tiles)
	}

	if path == "" {
		fmt.Fprintln(os.Stderr, "catanylizer: a board is required")
		flag.Usage()
		os.Exit(2)
	}

	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			slog.Error("failed to read stdin", "error", err)
			os.Exit(1)
		}
		tiles, messages, err := board.ParseAssignment(data)
		if err != nil {
			slog.Error("bad board document", "error", err)
			os.Exit(1)
		}
		return tiles, messages
	}

	tiles, messages, err := board.LoadFile(path)
	if err != nil {
		slog.Error("bad board document", "path", path, "error", err)
		os.Exit(1)
	}
	return tiles, messages
}

func printTable(ranked []score.Intersection) {
	fmt.Printf("%-6s %-20s %8s %6s %6s  %s\n",
		"RANK", "VERTEX", "SCORE", "PIPS", "RES", "ADJACENT TILES")
	for i, in := range ranked {
		fmt.Printf("%-6s %-20s %8.2f %6d %6d  %s\n",
			humanize.Ordinal(i+1),
			in.Label,
			in.Score,
			in.PipsSum,
			in.DistinctResources,
			in.AdjacentDescription,
		)
	}
}

func printJSON(weight, size float64, messages []board.ValidationMessage, ranked []score.Intersection) {
	out := struct {
		Weight        float64                   `json:"weight"`
		Size          float64                   `json:"size"`
		Messages      []board.ValidationMessage `json:"messages,omitempty"`
		Intersections []score.Intersection      `json:"intersections"`
	}{
		Weight:        weight,
		Size:          size,
		Messages:      messages,
		Intersections: ranked,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
