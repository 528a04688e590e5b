package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if os.Getenv("POSTGEN_DEBUG") == "1" {
		log.SetLevel(log.DebugLevel)
	}
}
