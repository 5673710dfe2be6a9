package ingest

import (
	"context"

	"github.com/herohde/chessbuddy/pkg/board"
	"github.com/herohde/chessbuddy/pkg/pattern"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Identifiers are opaque store-assigned keys. The orchestrator never
// interprets their contents.
type (
	PlayerID string
	BatchID  string
	GameID   string
	FenID    string
)

// GameRecord is everything record_game needs to enforce its uniqueness
// constraint and persist header metadata.
type GameRecord struct {
	Batch        BatchID
	White, Black PlayerID
	Date, Round  string
	PGNHash      string
	Result       board.Result
}

// FENRecord is everything upsert_fen needs.
type FENRecord struct {
	Text        string
	Side        board.Color
	Castling    board.Castling
	EnPassant   lang.Optional[board.Square]
	MaterialSig string
}

// MoveFeature is the per-ply feature vector recorded alongside a position:
// derived facts about the move that produced it, not the position itself.
type MoveFeature struct {
	SAN         string
	IsCapture   bool
	IsEnPassant bool
	IsPromotion bool
	IsCastle    bool
	IsCheck     bool
	IsMate      bool
}

// PositionRecord is one row for record_position.
type PositionRecord struct {
	Game    GameID
	Ply     int
	Fen     FenID
	Feature MoveFeature
}

// PatternDetectionRecord is one row for record_pattern_detection.
type PatternDetectionRecord struct {
	Game       GameID
	PatternID  string
	Color      board.Color
	Success    bool
	Confidence float64
	StartPly   int
	EndPly     int
	Outcome    pattern.SuccessOutcome
	Metadata   map[string]any
}

// Store is the persistence contract the orchestrator drives; any backend
// (relational, embedded, in-memory) satisfies it identically. Every method
// must be safe for concurrent use: the orchestrator may call it from
// multiple in-flight games at once, up to the configured fan-out.
type Store interface {
	// UpsertPlayer is unique by fide_id when present, otherwise by the
	// normalised (trimmed, lowercased) full name.
	UpsertPlayer(ctx context.Context, fullName string, fideID lang.Optional[string]) (PlayerID, error)

	// CreateBatch is unique by checksum: re-ingesting the same source
	// file returns the batch created the first time.
	CreateBatch(ctx context.Context, sourcePath, label, checksum string) (BatchID, error)

	// RecordGame is unique by (white, black, date, round, pgn_hash).
	// created is false when an existing row satisfied the constraint, in
	// which case the caller skips move processing for this game.
	RecordGame(ctx context.Context, rec GameRecord) (id GameID, created bool, err error)

	// UpsertFEN is unique by fen_text. created is false when the FEN was
	// already known, so the caller can skip requesting a new embedding.
	UpsertFEN(ctx context.Context, rec FENRecord) (id FenID, created bool, err error)

	// RecordPosition upserts by (game, ply).
	RecordPosition(ctx context.Context, rec PositionRecord) error

	// RecordEmbedding upserts by fen_id.
	RecordEmbedding(ctx context.Context, fenID FenID, vector []float32, version string) error

	// RecordPatternDetection upserts by (game, pattern_id, detected_by_color).
	RecordPatternDetection(ctx context.Context, rec PatternDetectionRecord) error
}
