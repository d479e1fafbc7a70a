package main

import (
	"fmt"
	"os"

	"txgate/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		fmt.Printf("txgate run into an error: %s", err)
		os.Exit(1)
	}
}
