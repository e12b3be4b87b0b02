package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/samhotchkiss/bark/internal/barkcli"
)

type lsCommandClient interface {
	MissionDetails(missionID string) (barkcli.MissionDetails, error)
	RecentPackets(missionID string) ([]barkcli.Packet, error)
	LastRequestURL() string
}

type lsClientFactory func() (lsCommandClient, string, error)

func newLsCommandClient() (lsCommandClient, string, error) {
	cfg, err := barkcli.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	return barkcli.NewClient(cfg), cfg.Mission.ID, nil
}

func handleLs(args []string) {
	if err := runLsCommand(args, newLsCommandClient, os.Stdout); err != nil {
		die(formatCLIError(err))
	}
}

func runLsCommand(args []string, factory lsClientFactory, out io.Writer) error {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	verbose := flags.Bool("v", false, "print the request URLs")
	if err := flags.Parse(args); err != nil {
		return err
	}

	client, missionID, err := factory()
	if err != nil {
		return err
	}

	details, err := client.MissionDetails(missionID)
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Fprintln(out, "GET", client.LastRequestURL())
	}

	packets, err := client.RecentPackets(missionID)
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Fprintln(out, "GET", client.LastRequestURL())
	}

	if len(packets) == 0 {
		fmt.Fprintln(out, "No packets found.")
		return nil
	}
	for i, packet := range packets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		barkcli.FormatPacket(out, details, packet)
	}
	return nil
}
