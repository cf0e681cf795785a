package main

import "floorplan/cmd/floorplanctl/cmd"

func main() {
	cmd.Execute()
}
