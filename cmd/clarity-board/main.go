package main

import (
	"os"
	"strings"

	"clarity-board/internal/cli"
)

func isItemID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "item-") && len(s) > len("item-")
}

// rewriteDirectItemLookupArgs turns `clarity-board [flags] <item-id>` into
// `clarity-board [flags] show <item-id>` before cobra sees argv.
func rewriteDirectItemLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Persistent flags that take a value; skip it so it is not mistaken for
	// the first positional.
	valueFlags := map[string]bool{
		"--dir":            true,
		"--backend":        true,
		"--redis-addr":     true,
		"--redis-prefix":   true,
		"--commit-timeout": true,
		"--log-level":      true,
		"--actor":          true,
		"--format":         true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if !isItemID(a) {
			return argv
		}
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "show")
		return append(out, argv[i:]...)
	}
	return argv
}

func main() {
	os.Args = rewriteDirectItemLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
