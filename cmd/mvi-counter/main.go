// Command mvi-counter runs the counter screen in a terminal.
package main

import "github.com/oshokin/mvi-reducer/cmd/mvi-counter/cmd"

func main() {
	cmd.Execute()
}
