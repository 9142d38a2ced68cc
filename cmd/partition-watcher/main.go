package main

import (
	"github.com/biswassri/kas-broker-plugins/cli"
)

func main() {
	cli.Execute()
}
