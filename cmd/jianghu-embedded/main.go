// Single-binary build with the demo game compiled in.
// Build with: go build -o jianghu-demo ./cmd/jianghu-embedded
package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/luoxia/jianghu/pkg/app"
)

//go:embed demo
var demoFS embed.FS

func main() {
	application := app.NewEmbedded(demoFS, "demo")
	if err := application.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
