package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samhotchkiss/bark/internal/barkcli"
)

type uplinkCommandClient interface {
	SendUplink(cmd barkcli.UplinkCommand) (json.RawMessage, error)
	LastRequestURL() string
}

type uplinkClientFactory func() (uplinkCommandClient, string, error)

func newUplinkCommandClient() (uplinkCommandClient, string, error) {
	cfg, err := barkcli.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	return barkcli.NewClient(cfg), cfg.Mission.ID, nil
}

func handleUplink(args []string) {
	if err := runUplinkCommand(args, newUplinkCommandClient, os.Stdout); err != nil {
		die(formatCLIError(err))
	}
}

func runUplinkCommand(args []string, factory uplinkClientFactory, out io.Writer) error {
	flags := flag.NewFlagSet("uplink", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	radioViewID := flags.Int("radio-view-id", 0, "radio view id to uplink through")
	formatID := flags.Int("format-id", 0, "uplink format id")
	fieldsJSON := flags.String("fields", "", "field values as a JSON object")
	note := flags.String("note", "", "operator note attached to the command")
	dryRun := flags.Bool("dry-run", false, "print the command without sending it")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *radioViewID <= 0 {
		return errors.New("--radio-view-id is required")
	}
	if *formatID <= 0 {
		return errors.New("--format-id is required")
	}

	var fields map[string]any
	if trimmed := strings.TrimSpace(*fieldsJSON); trimmed != "" {
		if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
			return fmt.Errorf("--fields must be a JSON object: %w", err)
		}
	}

	client, missionID, err := factory()
	if err != nil {
		return err
	}
	if strings.TrimSpace(missionID) == "" {
		return errors.New("missing mission id; run `bark config --mission-id <mission-id>`")
	}

	cmd := barkcli.UplinkCommand{
		MissionID:   strings.TrimSpace(missionID),
		RadioViewID: *radioViewID,
		FormatID:    *formatID,
		Fields:      fields,
		Note:        strings.TrimSpace(*note),
	}

	if *dryRun {
		payload, err := json.MarshalIndent(cmd, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Dry run; would call sendUplinkCommand with params:")
		fmt.Fprintln(out, string(payload))
		return nil
	}

	raw, err := client.SendUplink(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Uplink accepted.")
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err == nil {
		fmt.Fprintln(out, buf.String())
	}
	return nil
}
