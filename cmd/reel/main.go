// Command reel browses trending movies and manages favourites and ratings
// against a movie metadata API, caching responses locally.
package main

import (
	"os"

	"github.com/mmcdole/reel/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
