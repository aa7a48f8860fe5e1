package main

import (
	"os"
	"strings"

	"countdown-cli/internal/cli"
)

func isConfigPath(s string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(s)), ".json")
}

// rewriteFileArg makes `countdown path/to/config.json` behave like
// `countdown --file path/to/config.json`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first, so this looks for the first positional token.
func rewriteFileArg(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so the path is never swallowed.
	valueFlags := map[string]bool{
		"--file":      true,
		"--format":    true,
		"--log-level": true,
		"--log-file":  true,
		"--settings":  true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isConfigPath(argv[i+1]) {
				out := make([]string, 0, len(argv)+1)
				out = append(out, argv[:i]...)
				out = append(out, "--file", argv[i+1])
				return append(out, argv[i+2:]...)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if isConfigPath(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "--file", argv[i])
			return append(out, argv[i+1:]...)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteFileArg(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
