package main

import "dividend-screener/internal/cli"

func main() {
	cli.Execute()
}
