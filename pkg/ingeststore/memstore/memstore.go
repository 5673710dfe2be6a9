// Package memstore is an in-memory reference implementation of
// ingest.Store, useful for tests and for running the ingestion pipeline
// end to end without a real database.
package memstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/herohde/chessbuddy/pkg/ingest"
	"github.com/seekerror/stdlib/pkg/lang"
)

type gameKey struct {
	white, black, date, round, pgnHash string
}

type detectionKey struct {
	game      ingest.GameID
	patternID string
	color     int
}

// Store is a mutex-guarded, map-backed ingest.Store. All uniqueness
// constraints from the store contract are enforced in-process.
type Store struct {
	mu sync.Mutex

	nextPlayer, nextBatch, nextGame, nextFen int

	playersByFideID map[string]ingest.PlayerID
	playersByName   map[string]ingest.PlayerID

	batchesByChecksum map[string]ingest.BatchID

	gamesByKey map[gameKey]ingest.GameID
	games      map[ingest.GameID]ingest.GameRecord

	fensByText map[string]ingest.FenID
	fens       map[ingest.FenID]ingest.FENRecord

	positions map[ingest.GameID]map[int]ingest.PositionRecord

	embeddings map[ingest.FenID]embeddingRow

	detections map[detectionKey]ingest.PatternDetectionRecord
}

type embeddingRow struct {
	vector  []float32
	version string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		playersByFideID:   map[string]ingest.PlayerID{},
		playersByName:     map[string]ingest.PlayerID{},
		batchesByChecksum: map[string]ingest.BatchID{},
		gamesByKey:        map[gameKey]ingest.GameID{},
		games:             map[ingest.GameID]ingest.GameRecord{},
		fensByText:        map[string]ingest.FenID{},
		fens:              map[ingest.FenID]ingest.FENRecord{},
		positions:         map[ingest.GameID]map[int]ingest.PositionRecord{},
		embeddings:        map[ingest.FenID]embeddingRow{},
		detections:        map[detectionKey]ingest.PatternDetectionRecord{},
	}
}

func (s *Store) UpsertPlayer(ctx context.Context, fullName string, fideID lang.Optional[string]) (ingest.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := fideID.V(); ok && id != "" {
		if existing, ok := s.playersByFideID[id]; ok {
			return existing, nil
		}
		pid := s.newPlayerID()
		s.playersByFideID[id] = pid
		return pid, nil
	}

	key := normalizeName(fullName)
	if existing, ok := s.playersByName[key]; ok {
		return existing, nil
	}
	pid := s.newPlayerID()
	s.playersByName[key] = pid
	return pid, nil
}

func (s *Store) CreateBatch(ctx context.Context, sourcePath, label, checksum string) (ingest.BatchID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.batchesByChecksum[checksum]; ok {
		return existing, nil
	}
	bid := s.newBatchID()
	s.batchesByChecksum[checksum] = bid
	return bid, nil
}

func (s *Store) RecordGame(ctx context.Context, rec ingest.GameRecord) (ingest.GameID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := gameKey{
		white: string(rec.White), black: string(rec.Black),
		date: rec.Date, round: rec.Round, pgnHash: rec.PGNHash,
	}
	if existing, ok := s.gamesByKey[key]; ok {
		return existing, false, nil
	}

	gid := s.newGameID()
	s.gamesByKey[key] = gid
	s.games[gid] = rec
	s.positions[gid] = map[int]ingest.PositionRecord{}
	return gid, true, nil
}

func (s *Store) UpsertFEN(ctx context.Context, rec ingest.FENRecord) (ingest.FenID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.fensByText[rec.Text]; ok {
		return existing, false, nil
	}
	fid := s.newFenID()
	s.fensByText[rec.Text] = fid
	s.fens[fid] = rec
	return fid, true, nil
}

func (s *Store) RecordPosition(ctx context.Context, rec ingest.PositionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byPly, ok := s.positions[rec.Game]
	if !ok {
		return fmt.Errorf("%w: record_position: unknown game %v", ingest.ErrDomainViolation, rec.Game)
	}
	byPly[rec.Ply] = rec
	return nil
}

func (s *Store) RecordEmbedding(ctx context.Context, fenID ingest.FenID, vector []float32, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fens[fenID]; !ok {
		return fmt.Errorf("%w: record_embedding: unknown fen %v", ingest.ErrDomainViolation, fenID)
	}
	s.embeddings[fenID] = embeddingRow{vector: vector, version: version}
	return nil
}

func (s *Store) RecordPatternDetection(ctx context.Context, rec ingest.PatternDetectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := detectionKey{game: rec.Game, patternID: rec.PatternID, color: int(rec.Color)}
	s.detections[key] = rec
	return nil
}

// Positions returns a copy of every recorded position for gameID, useful
// for tests and debugging.
func (s *Store) Positions(gameID ingest.GameID) map[int]ingest.PositionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]ingest.PositionRecord, len(s.positions[gameID]))
	for k, v := range s.positions[gameID] {
		out[k] = v
	}
	return out
}

// Detections returns a copy of every recorded pattern detection.
func (s *Store) Detections() []ingest.PatternDetectionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ingest.PatternDetectionRecord, 0, len(s.detections))
	for _, v := range s.detections {
		out = append(out, v)
	}
	return out
}

func (s *Store) newPlayerID() ingest.PlayerID {
	s.nextPlayer++
	return ingest.PlayerID("player-" + strconv.Itoa(s.nextPlayer))
}

func (s *Store) newBatchID() ingest.BatchID {
	s.nextBatch++
	return ingest.BatchID("batch-" + strconv.Itoa(s.nextBatch))
}

func (s *Store) newGameID() ingest.GameID {
	s.nextGame++
	return ingest.GameID("game-" + strconv.Itoa(s.nextGame))
}

func (s *Store) newFenID() ingest.FenID {
	s.nextFen++
	return ingest.FenID("fen-" + strconv.Itoa(s.nextFen))
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
