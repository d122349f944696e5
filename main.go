package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/op/go-logging"

	"statuspage-geckoboard/config"
	"statuspage-geckoboard/report"
	"statuspage-geckoboard/service"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

var log = logging.MustGetLogger("statuspage-geckoboard")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("statuspage-geckoboard", flag.ContinueOnError)
	credentialsFile := fs.String("credentials", "", "path to the credentials YAML file (default $CREDENTIALS_FILE or "+config.DefaultCredentialsFile+")")
	envFile := fs.String("env", ".env", "optional dotenv file overlaid on the environment")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if *showVersion {
		fmt.Println(version)
		return 0
	}

	cfg, err := config.GetConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := config.SetupLogging(cfg.LogLevel, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %v\n", err)
		return 1
	}
	credentials := cfg.CredentialsFile
	if *credentialsFile != "" {
		credentials = *credentialsFile
	}

	httpClient, err := service.NewHTTPClient(cfg)
	if err != nil {
		log.Errorf("Error creating HTTP client: %v", err)
		return 1
	}

	statuspage, err := service.NewStatuspageClient(credentials, httpClient)
	if err != nil {
		log.Errorf("Error loading Statuspage credentials: %v", err)
		return 1
	}
	geckoboard, err := service.NewGeckoboardClient(credentials, httpClient)
	if err != nil {
		log.Errorf("Error loading Geckoboard credentials: %v", err)
		return 1
	}

	reporter := &report.Reporter{
		Statuspage: statuspage,
		Geckoboard: geckoboard,
	}
	summary, err := reporter.Run(context.Background())
	if err != nil {
		log.Errorf("Run failed: %v", err)
		return 1
	}

	log.Infof("done: incidents=%d skipped=%d pushed=%t", summary.Incidents, summary.Skipped, summary.Pushed)
	return 0
}
