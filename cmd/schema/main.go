package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/replyscope/pkg/config"
)

type options struct {
	Output string `short:"o" long:"output" default:"schema.json" description:"schema file to write"`
	Check  bool   `long:"check" description:"fail if the schema file differs from the generated one"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}
	if err := run(opts); err != nil {
		lgr.Fatalf("[ERROR] %v", err)
	}
}

func run(opts options) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')

	if opts.Check {
		current, err := os.ReadFile(opts.Output)
		if err != nil {
			return fmt.Errorf("read %s: %w", opts.Output, err)
		}
		if !bytes.Equal(bytes.TrimSpace(current), bytes.TrimSpace(data)) {
			return fmt.Errorf("%s is stale, run go generate ./pkg/config", opts.Output)
		}
		lgr.Printf("[INFO] %s is up to date", opts.Output)
		return nil
	}

	if err := os.WriteFile(opts.Output, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}
	lgr.Printf("[INFO] schema written to %s, %d bytes", opts.Output, len(data))
	return nil
}
