package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mtarnawa/gwentish/internal/catalog"
	gwmcp "github.com/mtarnawa/gwentish/internal/mcp"
)

func main() {
	catalogPath := flag.String("catalog", "data/catalog.yaml", "path to catalog YAML file")
	flag.Parse()

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	gwmcp.SetCatalog(cat)

	s := server.NewMCPServer("gwentish", "1.0.0")
	gwmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
