package search

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spacebio/pubdex/internal/domain"
	"github.com/spacebio/pubdex/internal/index"
	"github.com/spacebio/pubdex/internal/index/tfidf"
)

// Three-row corpus: rows 0 and 2 share the bone/skeletal/density vocabulary,
// row 1 is disjoint from it.
const testCSV = `title,link,text,clean_text,word_count,topic,journal,article_type
Microgravity Effects on Bone Loss,https://pmc.ncbi.nlm.nih.gov/articles/PMC2011001/,full text one,microgravity bone loss astronaut skeletal density bone,120,0,NPJ Microgravity,research
Plant Growth in Mars Greenhouse,https://pmc.ncbi.nlm.nih.gov/articles/PMC2015002/,full text two,plant growth mars greenhouse photosynthesis seedling,90,1,Astrobiology,research
Bone Density Study in Space,https://pmc.ncbi.nlm.nih.gov/articles/PMC2020003/,full text three,bone density study spaceflight skeletal measurement,200,0,NPJ Microgravity,review
`

// newTestService builds a search service over a real index loaded from a
// temporary corpus file.
func newTestService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	idx := index.New(path, tfidf.Config{MaxFeatures: 100, MinDocFreq: 2, MaxDocRatio: 0.8}, zap.NewNop())
	if err := idx.Load(); err != nil {
		t.Fatalf("load index: %v", err)
	}
	return New(idx, zap.NewNop())
}

// failingIndexer simulates an index that never loaded.
type failingIndexer struct{}

func (failingIndexer) Snapshot() (*index.Snapshot, error) {
	return nil, domain.ErrDataUnavailable
}

func intPtr(v int) *int { return &v }
