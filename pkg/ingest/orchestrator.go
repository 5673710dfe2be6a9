// Package ingest implements the ingestion orchestrator: it walks PGN games
// from a streaming parser, drives the chess core to derive positions,
// dedupes against a Store, requests embeddings for unique FENs, and runs
// every registered pattern detector over each game.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/board/san"
	"github.com/herohde/chessbuddy/pkg/pattern"
	"github.com/herohde/chessbuddy/pkg/pgn"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"golang.org/x/sync/errgroup"
)

// Orchestrator drives one ingestion run against a Store and an Embedder.
type Orchestrator struct {
	Store    Store
	Embedder Embedder
	Registry *pattern.Registry

	// FanOut bounds how many games may be processed concurrently. Zero or
	// negative means unbounded (limited only by the store's own pool).
	FanOut int
}

// IngestFile walks every game in r and returns the batch summary. checksum
// is the caller-computed content hash of the whole source (the
// orchestrator never buffers the file itself to compute it, to keep the
// read path streaming).
func (o *Orchestrator) IngestFile(ctx context.Context, sourcePath, label, checksum string, r io.Reader) (Summary, error) {
	batch, err := o.Store.CreateBatch(ctx, sourcePath, label, checksum)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: create_batch: %v", ErrExternalFailure, err)
	}

	sb := newSummaryBuilder()
	parser := pgn.NewParser(r)

	eg, gctx := errgroup.WithContext(ctx)
	if o.FanOut > 0 {
		eg.SetLimit(o.FanOut)
	}

	for {
		game, err := parser.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = eg.Wait()
			return sb.build(), fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}

		eg.Go(func() error {
			o.processGame(gctx, batch, game, sb)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		logw.Warningf(ctx, "ingest: batch %s: %v", batch, err)
	}

	return sb.build(), nil
}

// processGame runs the full per-game pipeline. Store failures on the
// player/game path are fatal only for this game: they are logged and the
// game is counted skipped, never propagated to abort the batch.
func (o *Orchestrator) processGame(ctx context.Context, batch BatchID, game *pgn.Game, sb *summaryBuilder) {
	whiteName, _ := game.Tag("White")
	blackName, _ := game.Tag("Black")

	whiteID, err := o.Store.UpsertPlayer(ctx, whiteName, fideID(game, "White"))
	if err != nil {
		logw.Warningf(ctx, "ingest: upsert_player(%q) failed: %v", whiteName, err)
		sb.gameSkipped()
		return
	}
	blackID, err := o.Store.UpsertPlayer(ctx, blackName, fideID(game, "Black"))
	if err != nil {
		logw.Warningf(ctx, "ingest: upsert_player(%q) failed: %v", blackName, err)
		sb.gameSkipped()
		return
	}

	date, _ := game.Tag("Date")
	round, _ := game.Tag("Round")

	rec := GameRecord{
		Batch:   batch,
		White:   whiteID,
		Black:   blackID,
		Date:    date,
		Round:   round,
		PGNHash: contentHash(game),
		Result:  game.Result,
	}

	gameID, created, err := o.Store.RecordGame(ctx, rec)
	if err != nil {
		logw.Warningf(ctx, "ingest: record_game(%v vs %v) failed: %v", whiteName, blackName, err)
		sb.gameSkipped()
		return
	}
	if !created {
		sb.gameSkipped()
		return
	}
	sb.gameProcessed()

	for _, mv := range game.Moves {
		o.processPosition(ctx, gameID, mv, sb)
	}

	for _, detector := range o.Registry.List() {
		detection := detector.Detect(game.Moves, game.Result)
		if !detection.Detected {
			continue
		}
		success, outcome := detector.ClassifySuccess(detection, game.Result)

		drec := PatternDetectionRecord{
			Game:       gameID,
			PatternID:  detector.PatternID(),
			Color:      detection.InitiatingColor,
			Success:    success,
			Confidence: detection.Confidence,
			StartPly:   detection.StartPly,
			EndPly:     detection.EndPly,
			Outcome:    outcome,
			Metadata:   detection.Metadata,
		}
		if err := o.Store.RecordPatternDetection(ctx, drec); err != nil {
			logw.Warningf(ctx, "ingest: record_pattern_detection(%s) failed: %v", detector.PatternID(), err)
			continue
		}
		sb.detection(detector.PatternID())
	}
}

func (o *Orchestrator) processPosition(ctx context.Context, gameID GameID, mv pattern.Move, sb *summaryBuilder) {
	materialSig := fmt.Sprintf("%016x", board.DefaultHashTable.Hash(mv.After))

	fenID, created, err := o.Store.UpsertFEN(ctx, FENRecord{
		Text:        mv.FENAfter,
		Side:        mv.After.Metadata.SideToMove,
		Castling:    mv.After.Metadata.Castling,
		EnPassant:   mv.After.Metadata.EnPassant,
		MaterialSig: materialSig,
	})
	if err != nil {
		logw.Warningf(ctx, "ingest: upsert_fen(ply=%d) failed: %v", mv.Ply, err)
		return
	}
	if created {
		sb.uniqueFEN()
	}

	if err := o.Store.RecordPosition(ctx, PositionRecord{
		Game:    gameID,
		Ply:     mv.Ply,
		Fen:     fenID,
		Feature: moveFeature(mv),
	}); err != nil {
		logw.Warningf(ctx, "ingest: record_position(ply=%d) failed: %v", mv.Ply, err)
		return
	}
	sb.positionRecorded()

	if !created {
		return
	}

	vector, version, err := o.Embedder.Embed(ctx, mv.FENAfter)
	if err != nil {
		logw.Warningf(ctx, "ingest: embed(ply=%d) failed: %v; position persisted without embedding", mv.Ply, err)
		return
	}
	if err := o.Store.RecordEmbedding(ctx, fenID, vector, version); err != nil {
		logw.Warningf(ctx, "ingest: record_embedding(ply=%d) failed: %v", mv.Ply, err)
		return
	}
	sb.embeddingGenerated()
}

func moveFeature(mv pattern.Move) MoveFeature {
	p, err := san.Parse(mv.SAN)
	if err != nil {
		return MoveFeature{SAN: mv.SAN}
	}
	return MoveFeature{
		SAN:         mv.SAN,
		IsCapture:   p.IsCapture,
		IsPromotion: p.Promotion != board.NoPiece,
		IsCastle:    p.IsCastleMove(),
		IsCheck:     p.IsCheck,
		IsMate:      p.IsMate,
	}
}

func fideID(game *pgn.Game, side string) lang.Optional[string] {
	if v, ok := game.Tag(side + "FideId"); ok && strings.TrimSpace(v) != "" {
		return lang.Some(v)
	}
	return lang.Optional[string]{}
}

// contentHash derives the per-game uniqueness key from its tags and move
// text, independent of the batch-level source checksum.
func contentHash(game *pgn.Game) string {
	h := sha256.New()
	for _, key := range []string{"White", "Black", "Date", "Round", "Result"} {
		v, _ := game.Tag(key)
		h.Write([]byte(key))
		h.Write([]byte(v))
	}
	for _, mv := range game.Moves {
		h.Write([]byte(mv.SAN))
	}
	return hex.EncodeToString(h.Sum(nil))
}
