package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/samhotchkiss/bark/internal/barkcli"
)

const credentialSetupHint = `Please configure your credentials using the following commands:

  bark config --email <your_email@example.com>
  bark config --api-key <your_api_key>
  bark config --mission-id <your_mission_id>`

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "config":
		handleConfig(os.Args[2:])
	case "info":
		handleInfo(os.Args[2:])
	case "ls":
		handleLs(os.Args[2:])
	case "uplink":
		handleUplink(os.Args[2:])
	case "version":
		fmt.Println("bark dev")
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`bark <command> [args]

Commands:
  config           Store email, API key, and mission id
  info             Show mission details
  ls               List recent packets
  uplink           Send an uplink command to the satellite
  version          Show CLI version`)
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func dieIf(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	die(formatCLIError(err))
}

func formatCLIError(err error) string {
	if err == nil {
		return ""
	}
	message := strings.TrimSpace(err.Error())
	lower := strings.ToLower(message)
	if strings.Contains(lower, "missing email") ||
		strings.Contains(lower, "missing api key") ||
		strings.Contains(lower, "missing mission id") {
		return credentialSetupHint
	}
	return message
}

func mustConfigPath() string {
	path, err := barkcli.ConfigPath()
	if err != nil {
		return "config"
	}
	return path
}
