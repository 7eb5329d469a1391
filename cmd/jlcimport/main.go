package main

import "github.com/OpenTraceLab/jlcimport/cmd/jlcimport/cmd"

func main() {
	cmd.Execute()
}
