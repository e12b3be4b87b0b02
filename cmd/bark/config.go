package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samhotchkiss/bark/internal/barkcli"
)

func handleConfig(args []string) {
	flags := flag.NewFlagSet("config", flag.ExitOnError)
	email := flags.String("email", "", "vendor account email")
	apiKey := flags.String("api-key", "", "vendor API key")
	missionID := flags.String("mission-id", "", "mission id")
	_ = flags.Parse(args)

	cfg, err := barkcli.LoadConfig()
	dieIf(err)

	if strings.TrimSpace(*email) == "" && strings.TrimSpace(*apiKey) == "" && strings.TrimSpace(*missionID) == "" {
		printConfig(os.Stdout, cfg)
		return
	}

	// Merge only the fields that were given; everything else persists.
	if v := strings.TrimSpace(*email); v != "" {
		cfg.User.Email = v
	}
	if v := strings.TrimSpace(*apiKey); v != "" {
		cfg.User.APIKey = v
	}
	if v := strings.TrimSpace(*missionID); v != "" {
		cfg.Mission.ID = v
	}

	dieIf(barkcli.SaveConfig(cfg))
	fmt.Println("Saved config to", mustConfigPath())
}

func printConfig(out io.Writer, cfg barkcli.Config) {
	fmt.Fprintf(out, "Email:      %s\n", valueOrUnset(cfg.User.Email))
	fmt.Fprintf(out, "API key:    %s\n", valueOrUnset(cfg.User.APIKey))
	fmt.Fprintf(out, "Mission id: %s\n", valueOrUnset(cfg.Mission.ID))
}

func valueOrUnset(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(not set)"
	}
	return value
}
