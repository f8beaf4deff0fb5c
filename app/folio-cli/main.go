package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yoockh/folio/internal/client"
	"github.com/yoockh/folio/internal/logger"
)

const usage = `usage: folio-cli [flags] <resource> <command> [args]

resources: about | profile | projects
commands:  list | get ID | current | activate ID
           login EMAIL PASSWORD

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("folio-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	api := fs.String("api", envOr("FOLIO_API", "http://localhost:3001"), "API base URL")
	token := fs.String("token", os.Getenv("FOLIO_TOKEN"), "bearer token for admin commands")
	fallback := fs.Bool("offline-fallback", false, "serve from a local store when the API is unreachable")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	verbose := fs.Bool("v", false, "log mode changes to stderr")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logger.Discard()
	if *verbose {
		log = logger.New("info", "text")
		log.SetOutput(stderr)
	}

	opts := []client.Option{client.WithToken(*token), client.WithTimeout(*timeout), client.WithLogger(log)}
	if *fallback {
		opts = append(opts, client.WithFallback(), client.OnModeChange(func(resource string, m client.Mode) {
			fmt.Fprintf(stderr, "%s: now %s\n", resource, m)
		}))
	}
	c := client.New(*api, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 2*(*timeout))
	defer cancel()

	out, err := dispatch(ctx, c, fs.Args())
	if err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

var errUsage = errors.New("invalid arguments")

func dispatch(ctx context.Context, c *client.Client, args []string) (any, error) {
	if len(args) == 3 && args[0] == "login" {
		return c.Login(ctx, args[1], args[2])
	}
	if len(args) < 2 {
		return nil, errUsage
	}

	res, cmd, rest := args[0], args[1], args[2:]
	arg := func() (string, error) {
		if len(rest) != 1 {
			return "", fmt.Errorf("%w: %s %s needs an ID", errUsage, res, cmd)
		}
		return rest[0], nil
	}

	switch res {
	case "about":
		switch cmd {
		case "list":
			return c.About.List(ctx)
		case "current":
			return c.About.Current(ctx)
		case "get":
			id, err := arg()
			if err != nil {
				return nil, err
			}
			return c.About.Get(ctx, id)
		case "activate":
			id, err := arg()
			if err != nil {
				return nil, err
			}
			return c.About.SetActive(ctx, id)
		}
	case "profile":
		switch cmd {
		case "list":
			return c.Profile.List(ctx)
		case "current", "active":
			return c.Profile.Active(ctx)
		case "get":
			id, err := arg()
			if err != nil {
				return nil, err
			}
			return c.Profile.Get(ctx, id)
		case "activate":
			id, err := arg()
			if err != nil {
				return nil, err
			}
			return c.Profile.SetActive(ctx, id)
		}
	case "projects":
		switch cmd {
		case "list":
			return c.Projects.List(ctx)
		case "get":
			id, err := arg()
			if err != nil {
				return nil, err
			}
			return c.Projects.Get(ctx, id)
		}
	}
	return nil, fmt.Errorf("%w: %s %s", errUsage, res, cmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
