package main

import "github.com/swatchly/swatch/internal/cli"

func main() {
	cli.Run()
}
