package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"cfmtlint/internal/driver"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

var sourceSeeds = []string{
	"",
	"#include <stdio.h>\nint main(void) { printf(\"%d\\n\", 1); return 0; }\n",
	"#include <stdio.h>\nvoid f(long n, char *s) { printf(\"%#s %hs %d\", s, s, n); }\n",
	"#include <stdio.h>\nvoid f(void) { printf(\"%\" \"ld\", 1L); fprintf(stderr, \"%*.*f\", 3, 2, 1.0); }\n",
	"#include <stdio.h>\n#define FMT \"%d\"\nvoid f(void) { printf(FMT, 1); printf(\"%s\", FMT); }\n",
	"#include <stdio.h>\nvoid f(void) { printf(\"unterminated);\n",
	"#include <stdio.h>\nvoid f(void) { printf(\"%d\", (int)sizeof(struct { int a; }), g(1, (2, 3))); }\n",
	"printf(\"%",
}

var formatSeeds = []string{
	"", "%", "%%", "%5%", "%d", "%-+ 0#10.5lld", "%*.*f", "%.*s", "%hhn", "%Lf", "%q", "%l",
	"a%db%sc", "%ls %lc %C %S", "%zu %td %jd", "%#x %#o %#p", "%.", "%10", "\\n%d\\t",
}

func addSourceSeeds(f *testing.F) {
	for _, s := range sourceSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все C/C++ файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !driver.IsSourceFile(path) {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
