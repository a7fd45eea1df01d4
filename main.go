// main.go
//
// Entry point; CLI handling lives in the Cobra root command in cmd/root.go

package main

import (
	"github.com/mlfq-sim/mlfq-sim/cmd"
)

func main() {
	cmd.Execute()
}
