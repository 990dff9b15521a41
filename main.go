package main

import "github.com/bastio-ai/gvl/cmd"

func main() {
	cmd.Execute()
}
