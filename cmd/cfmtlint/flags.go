package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootStrings читает строковые persistent-флаги корневой команды по именам.
func rootStrings(cmd *cobra.Command, names ...string) ([]string, error) {
	flags := cmd.Root().PersistentFlags()
	out := make([]string, len(names))
	for i, name := range names {
		v, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		out[i] = v
	}
	return out, nil
}
