// Command jandex scans compiled Java class files and prints or
// summarizes the resulting annotation index.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
