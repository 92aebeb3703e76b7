package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"itemstore/internal/client"
	"itemstore/internal/shared"
)

const usage = `itemstore-cli - talk to an itemstore server

Usage:
  itemstore-cli [options] list
  itemstore-cli [options] get ID
  itemstore-cli [options] create ID NAME DESCRIPTION
  itemstore-cli [options] update ID NEW_ID NAME DESCRIPTION
  itemstore-cli [options] delete ID
  itemstore-cli [options] health

Options:
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("itemstore-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "./itemstore-cli.json", "path to client config json")
	serverURL := fs.String("server", "", "server base URL (overrides config)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := shared.LoadClientConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 1
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	c := client.New(cfg)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	var out any
	switch cmd, a := rest[0], rest[1:]; {
	case cmd == "list" && len(a) == 0:
		out, err = c.List(ctx)
	case cmd == "get" && len(a) == 1:
		out, err = c.Get(ctx, a[0])
	case cmd == "create" && len(a) == 3:
		err = c.Create(ctx, shared.Item{ID: a[0], Name: a[1], Description: a[2]})
	case cmd == "update" && len(a) == 4:
		err = c.Update(ctx, a[0], shared.Item{ID: a[1], Name: a[2], Description: a[3]})
	case cmd == "delete" && len(a) == 1:
		err = c.Delete(ctx, a[0])
	case cmd == "health" && len(a) == 0:
		out, err = c.Health(ctx)
	default:
		fs.Usage()
		return 2
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if out != nil {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	}
	return 0
}
