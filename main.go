package main

import "github.com/lintgate/lintgate/cmd"

func main() {
	cmd.Execute()
}
