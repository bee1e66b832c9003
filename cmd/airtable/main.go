// Command airtable reads and writes Airtable tables described by a schema
// file.
package main

import "github.com/mesh-intelligence/airtable/internal/cli"

func main() {
	cli.Execute()
}
