package main

import "github.com/iliyamo/match-seat-reservation/cmd/seatctl/cmd"

func main() {
	cmd.Execute()
}
