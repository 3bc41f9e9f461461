// Command news-crawler crawls a news site's daily archive into a database.
package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/north-cloud/news-crawler/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "news-crawler:", err)
		return 1
	}
	return 0
}
