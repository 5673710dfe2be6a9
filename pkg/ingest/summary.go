package ingest

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Summary is the batch-level report emitted after a source file has been
// fully ingested.
type Summary struct {
	GamesProcessed      int
	GamesSkipped        int
	PositionsRecorded   int
	UniqueFENs          int
	EmbeddingsGenerated int
	Detections          map[string]int
}

func (s Summary) String() string {
	ids := make([]string, 0, len(s.Detections))
	for id := range s.Detections {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var detections []string
	for _, id := range ids {
		detections = append(detections, fmt.Sprintf("%s=%d", id, s.Detections[id]))
	}

	return fmt.Sprintf(
		"games_processed=%d games_skipped=%d positions=%d unique_fens=%d embeddings=%d detections={%s}",
		s.GamesProcessed, s.GamesSkipped, s.PositionsRecorded, s.UniqueFENs, s.EmbeddingsGenerated,
		strings.Join(detections, ", "),
	)
}

// summaryBuilder accumulates a Summary from concurrently-processed games.
type summaryBuilder struct {
	mu sync.Mutex
	s  Summary
}

func newSummaryBuilder() *summaryBuilder {
	return &summaryBuilder{s: Summary{Detections: map[string]int{}}}
}

func (b *summaryBuilder) gameProcessed() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.s.GamesProcessed++
}

func (b *summaryBuilder) gameSkipped() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.s.GamesSkipped++
}

func (b *summaryBuilder) positionRecorded() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.s.PositionsRecorded++
}

func (b *summaryBuilder) uniqueFEN() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.s.UniqueFENs++
}

func (b *summaryBuilder) embeddingGenerated() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.s.EmbeddingsGenerated++
}

func (b *summaryBuilder) detection(patternID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.s.Detections[patternID]++
}

func (b *summaryBuilder) build() Summary {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.s
	out.Detections = make(map[string]int, len(b.s.Detections))
	for k, v := range b.s.Detections {
		out.Detections[k] = v
	}
	return out
}
