package main

import (
	"os"

	"irkit/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
