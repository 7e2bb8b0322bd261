package main

import "github.com/sagarpathak0/aarogyam-go/internal/cli"

func main() {
	cli.Execute()
}
