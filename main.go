/*
	Copyright 2023 Markus Papenbrock
*/

package main

import "github.com/mpapenbr/iracing-bests-go/cmd"

func main() {
	cmd.Execute()
}
