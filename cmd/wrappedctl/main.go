package main

import "DailyWrapped/pkg/cli"

func main() {
	cli.Execute()
}
