package main

import (
	"fmt"
	"os"

	notifyctlcmd "github.com/ashokpds15/Myself/pkg/notifyctl/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := notifyctlcmd.NewRootCommand(notifyctlcmd.DefaultConfig())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
