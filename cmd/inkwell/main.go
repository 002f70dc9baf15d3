package main

import (
	"github.com/blackink-studio/inkwell/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
