// Luminol extracts a colour palette from a wallpaper image and generates
// per-application colour configuration files.
package main

import (
	"os"

	"github.com/dheemansa/luminol/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
