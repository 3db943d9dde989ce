package main

import "ngramlp/internal/cli"

func main() {
	cli.Execute()
}
