package main

import (
	"log"

	"github.com/talachev/interview-pilot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
