package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTOML is written by `cfmtlint init`.
const DefaultTOML = `# cfmtlint configuration

[check]
# skip built-in printf functions unless <stdio.h> is included
require_stdio = true
# parallel files: 0 = GOMAXPROCS
jobs = 0
max_diagnostics = 100

# error | warning | info | off
[severity]
flag = "warning"
length = "warning"
type_mismatch = "warning"
type_wildcard = "warning"
type_notexist = "error"
args = "error"

# extra printf-like functions: name = zero-based format index
[functions]
# log_printf = 1

# project typedefs known to the type resolver
# [[typedefs]]
# name = "u64"
# type = "unsigned long long"
`

// WriteDefault creates dir/FileName. An existing file is kept unless force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, fmt.Errorf("%s already exists: %w", path, err)
		}
		return path, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.WriteString(DefaultTOML); err != nil {
		_ = f.Close()
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
