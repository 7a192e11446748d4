// mockdir CLI - directory-backed JSON and SSE mock server
package main

import "github.com/getmockd/mockdir/pkg/cli"

func main() {
	cli.Execute()
}
