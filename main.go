package main

import "conch/internal/cli"

func main() {
	cli.Execute()
}
