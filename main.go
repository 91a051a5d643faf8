package main

import (
	"os"

	"github.com/abhisek/quizcrafter/cmd"
)

func main() {
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
