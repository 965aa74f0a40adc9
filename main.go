package main

import (
	"log"

	"github.com/kilianp07/dispatchconsole/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
