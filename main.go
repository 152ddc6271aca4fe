package main

import "github.com/accountmgr/amkit/cmd"

func main() {
	cmd.Execute()
}
