package main

import (
	"fmt"
	"os"

	"github.com/selvastics/inrep-sub013/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
