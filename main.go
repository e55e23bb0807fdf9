// Package main provides the renew CLI entry point.
// renew is the command-line interface for the renewaldesk renewal pipeline.
package main

import "github.com/SafeGiantJacket/renewaldesk/cmd"

func main() {
	cmd.Execute()
}
