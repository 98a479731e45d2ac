// Where: cmd/eol-rebaser/main.go
// What: CLI entrypoint.
// Why: Execute migration commands with configured dependencies.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/ublue-os/eol-rebaser/internal/app"
)

func main() {
	// Optional overrides for development; a missing file is fine.
	_ = godotenv.Load()

	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
