// Command presetkit resolves Python project presets into validated
// configurations and serves them over HTTP.
package main

import (
	"os"

	"github.com/0xalexb/presetkit/cmd/presetkit/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
