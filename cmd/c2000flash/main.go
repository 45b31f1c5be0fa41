package main

import "github.com/OpenTraceLab/c2000flash/cmd/c2000flash/cmd"

func main() {
	cmd.Execute()
}
