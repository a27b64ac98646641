package main

import "podtrim/internal/cli"

func main() {
	cli.Main()
}
