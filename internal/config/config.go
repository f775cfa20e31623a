// Package config loads process-level settings for the complement-mcp
// server: the server root directory and whether mutation tools are
// enabled. Flags take precedence over environment variables, which in
// turn take precedence over the compiled-in defaults.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is process-scoped and immutable after Load.
type Config struct {
	Root       string
	AllowWrite bool
}

// Load reads -root/-write flags, falling back to COMPLEMENT_ROOT when
// -root is empty and to COMPLEMENT_WRITE when -write was not passed at
// all (an explicit -write=false still overrides the environment).
func Load() (*Config, error) {
	_ = godotenv.Load()

	root := flag.String("root", "", "server root directory (default: current working directory)")
	write := flag.Bool("write", false, "enable fs.create_file/overwrite_file/delete_path/copy_path/move_path")
	flag.Parse()

	resolvedRoot := strings.TrimSpace(*root)
	if resolvedRoot == "" {
		resolvedRoot = strings.TrimSpace(os.Getenv("COMPLEMENT_ROOT"))
	}
	if resolvedRoot == "" {
		resolvedRoot = "."
	}

	allowWrite := *write
	if !flagWasSet("write") {
		if envWrite := strings.TrimSpace(os.Getenv("COMPLEMENT_WRITE")); envWrite != "" {
			if v, err := strconv.ParseBool(envWrite); err == nil {
				allowWrite = v
			}
		}
	}

	return &Config{Root: resolvedRoot, AllowWrite: allowWrite}, nil
}

// flagWasSet reports whether name was explicitly passed on the command
// line, so an unset -write flag doesn't shadow COMPLEMENT_WRITE=true.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
