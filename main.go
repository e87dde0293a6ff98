package main

import (
	"os"

	"github.com/scan-io-git/endpointmap/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
