package fuzztests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cfmtlint/internal/driver"
)

// Сиды из testdata должны доходить до валидатора, иначе фаззинг проверяет пустой Bag.
func TestMismatchesSeedFindsCalls(t *testing.T) {
	path := filepath.Join("..", "..", "testdata", "mismatches.c")
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	_, res := driver.AnalyzeSource(context.Background(), "mismatches.c", src, driver.Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Calls != 9 {
		t.Fatalf("calls = %d, want 9", res.Calls)
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("expected error diagnostics, got %d items", res.Bag.Len())
	}
}
