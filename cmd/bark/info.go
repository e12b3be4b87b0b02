package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/samhotchkiss/bark/internal/barkcli"
)

type infoCommandClient interface {
	MissionDetailsRaw(missionID string) (json.RawMessage, error)
	LastRequestURL() string
}

type infoClientFactory func() (infoCommandClient, string, error)

func newInfoCommandClient() (infoCommandClient, string, error) {
	cfg, err := barkcli.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	return barkcli.NewClient(cfg), cfg.Mission.ID, nil
}

func handleInfo(args []string) {
	if err := runInfoCommand(args, newInfoCommandClient, os.Stdout); err != nil {
		die(formatCLIError(err))
	}
}

func runInfoCommand(args []string, factory infoClientFactory, out io.Writer) error {
	flags := flag.NewFlagSet("info", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	verbose := flags.Bool("v", false, "print the request URL")
	if err := flags.Parse(args); err != nil {
		return err
	}

	client, missionID, err := factory()
	if err != nil {
		return err
	}
	raw, err := client.MissionDetailsRaw(missionID)
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Fprintln(out, "GET", client.LastRequestURL())
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format mission details: %w", err)
	}
	fmt.Fprintln(out, buf.String())
	return nil
}
