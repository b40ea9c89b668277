package main

import (
	"flag"
	"io"
)

const usage = `usage: weather [flags] <command> [city]

commands:
  list             current weather for every configured city
  show [city]      detailed weather for city (defaults to the last city shown)
  forecast [city]  detailed weather and forecast for city
  shell            read cities from stdin, one lookup per line
  serve            run the HTTP API

flags:
`

type cliArgs struct {
	config  string
	verbose bool
	command string
	rest    []string
}

func parseFlags(args []string, stderr io.Writer) (cliArgs, error) {
	var out cliArgs

	fs := flag.NewFlagSet("weather", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&out.config, "config", "", "Path to a YAML config file")
	fs.BoolVar(&out.verbose, "v", false, "Enable debug logging")
	fs.Usage = func() {
		_, _ = io.WriteString(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cliArgs{}, err
	}

	rest := fs.Args()
	if len(rest) > 0 {
		out.command, out.rest = rest[0], rest[1:]
	}
	return out, nil
}
