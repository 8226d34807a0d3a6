package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"maps"
	"slices"

	"cfmtlint/internal/config"
	"cfmtlint/internal/printf"
	"cfmtlint/internal/source"
)

// Digest is a SHA-256 sum.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). parts уже в детерминированном порядке.
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey binds a result to the file's path, content and analysis options.
func cacheKey(file *source.File, cfg *config.Config, opts Options) Digest {
	pathSum := Digest(sha256.Sum256([]byte(file.Path)))
	return combineDigest(Digest(file.Hash), optionsDigest(cfg, opts.requireStdio(cfg), opts.maxDiagnostics(cfg)), pathSum)
}

// optionsDigest hashes every option that changes analysis output.
func optionsDigest(cfg *config.Config, requireStdio bool, maxDiagnostics int) Digest {
	h := sha256.New()
	var buf []byte
	writeInt := func(v int) {
		buf = binary.AppendVarint(buf[:0], int64(v))
		_, _ = h.Write(buf)
	}
	writeStr := func(s string) {
		writeInt(len(s))
		_, _ = h.Write([]byte(s))
	}

	writeInt(int(diskCacheSchemaVersion))
	if requireStdio {
		writeInt(1)
	} else {
		writeInt(0)
	}
	writeInt(maxDiagnostics)
	for _, kind := range printf.ErrorKinds {
		lvl := cfg.Level(kind)
		writeStr(kind.Key())
		if lvl.Enabled {
			writeStr(lvl.Severity.String())
		} else {
			writeStr("off")
		}
	}
	for _, name := range cfg.FunctionNames() {
		writeStr(name)
		writeInt(cfg.Functions[name])
	}
	typedefs := cfg.TypedefTypes()
	for _, name := range slices.Sorted(maps.Keys(typedefs)) {
		writeStr(name)
		writeStr(typedefs[name].String())
	}

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
