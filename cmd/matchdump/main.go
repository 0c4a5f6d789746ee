// Command matchdump prints the match or its event table as JSON.
//
//	go run ./cmd/matchdump -url https://www.whoscored.com/Matches/1729462/Live
//	go run ./cmd/matchdump -url <url> -events -recipients
//	go run ./cmd/matchdump -file page.html -events
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"

	"github.com/omarshaarawi/matchbot/internal/api/matchcentre"
	"github.com/omarshaarawi/matchbot/internal/api/whoscored"
	"github.com/omarshaarawi/matchbot/internal/config"
	"github.com/omarshaarawi/matchbot/internal/extract"
	"github.com/omarshaarawi/matchbot/internal/normalize"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	pageURL := flag.String("url", "", "match centre page URL")
	file := flag.String("file", "", "read a saved match page instead of fetching")
	events := flag.Bool("events", false, "dump the normalized event table instead of the match")
	recipients := flag.Bool("recipients", false, "infer pass recipients (with -events)")
	timeout := flag.Duration("timeout", 60*time.Second, "overall deadline")
	flag.Parse()

	if *pageURL == "" && *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*pageURL, *file, *events, *recipients, *timeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(pageURL, file string, events, recipients bool, timeout time.Duration, out io.Writer) error {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var fetcher whoscored.Fetcher
	if file != "" {
		fetcher = fileFetcher(file)
		if pageURL == "" {
			pageURL = file
		}
	} else {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		fetcher, err = whoscored.NewFetcher(cfg.WhoScored)
		if err != nil {
			return err
		}
	}

	api := matchcentre.NewAPI(fetcher, extract.New())

	var v any
	if events {
		table, err := api.GetNormalizedEvents(ctx, pageURL)
		if err != nil {
			return err
		}
		if recipients {
			normalize.InferPassRecipients(table)
		}
		v = table
	} else {
		m, err := api.GetMatch(ctx, pageURL)
		if err != nil {
			return err
		}
		v = m
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fileFetcher serves a saved page from disk.
type fileFetcher string

func (f fileFetcher) Fetch(context.Context, string) (string, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return "", &whoscored.FetchError{URL: string(f), Err: err}
	}
	return string(data), nil
}
