// This program drives a sealchain node from the command line.
package main

import "github.com/ardanlabs/sealchain/app/tooling/chain/cmd"

func main() {
	cmd.Execute()
}
