package main

import (
	"fmt"
	"os"

	"github.com/offlinefirst/keytap/internal/cmd"
)

func main() {
	root := cmd.NewRootCommand()
	if err := root.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "keytap: %v\n", err)
		os.Exit(1)
	}
}
