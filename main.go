package main

import (
	"github.com/dogechain-lab/objectchain/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
