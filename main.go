package main

import "github.com/Tiliavir/cora-hours/cmd"

func main() {
	cmd.Execute()
}
