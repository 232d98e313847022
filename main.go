package main

import (
	"log"

	"github.com/anonymous-tct-authors/tct-models/cli"
)

func main() {
	log.SetFlags(0)
	if err := cli.Execute(); err != nil {
		log.Fatalf("tctanim: %v", err)
	}
}
