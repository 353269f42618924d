package main

import "mtgmcp/cmd/mtgmcp-cli/cmd"

func main() {
	cmd.Execute()
}
