package main

import (
	"log"

	"github.com/resumi/job-discovery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
