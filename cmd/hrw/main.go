package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"hrw/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
