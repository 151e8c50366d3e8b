package main

import "circuitdoc/internal/cli"

func main() {
	cli.Execute()
}
