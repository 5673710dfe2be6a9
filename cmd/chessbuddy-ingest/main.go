package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/herohde/chessbuddy/pkg/embed/hashembed"
	"github.com/herohde/chessbuddy/pkg/ingest"
	"github.com/herohde/chessbuddy/pkg/ingeststore/memstore"
	"github.com/herohde/chessbuddy/pkg/pattern"
	"github.com/herohde/chessbuddy/pkg/pattern/endgame"
	"github.com/herohde/chessbuddy/pkg/pattern/majority"
	"github.com/herohde/chessbuddy/pkg/pattern/tactical"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

var (
	source = flag.String("source", "", "Path to a PGN file to ingest")
	label  = flag.String("label", "", "Human-readable label recorded with the batch")
	fanOut = flag.Int("fanout", 8, "Maximum number of games processed concurrently")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: chessbuddy-ingest -source <file.pgn> [options]

chessbuddy-ingest loads a PGN file, derives every position it contains and
runs the registered strategic, tactical and endgame pattern detectors over
each game.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "chessbuddy-ingest %v", version)

	if *source == "" {
		flag.Usage()
		logw.Exitf(ctx, "-source is required")
	}

	checksum, err := fileChecksum(*source)
	if err != nil {
		logw.Exitf(ctx, "Failed to checksum %v: %v", *source, err)
	}

	f, err := os.Open(*source)
	if err != nil {
		logw.Exitf(ctx, "Failed to open %v: %v", *source, err)
	}
	defer f.Close()

	registry := pattern.NewRegistry()
	registry.Register(majority.Queenside{})
	registry.Register(majority.Minority{})
	registry.Register(tactical.GreekGift{})
	registry.Register(endgame.Lucena{})
	registry.Register(endgame.Philidor{})

	o := &ingest.Orchestrator{
		Store:    memstore.New(),
		Embedder: hashembed.New(),
		Registry: registry,
		FanOut:   *fanOut,
	}

	batchLabel := *label
	if batchLabel == "" {
		batchLabel = *source
	}

	summary, err := o.IngestFile(ctx, *source, batchLabel, checksum, f)
	if err != nil {
		logw.Exitf(ctx, "Ingestion failed: %v", err)
	}

	logw.Infof(ctx, "%v", summary)
}

// fileChecksum hashes the whole source file up front so the orchestrator's
// own read of it can stay a single streaming pass.
func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
