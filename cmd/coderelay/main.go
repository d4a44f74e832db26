package main

import (
	"github.com/ktanaka/coderelay-go/internal/cli"
)

func main() {
	cli.Execute()
}
