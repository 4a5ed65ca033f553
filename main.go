// Copyright © 2025 The tinysexpr authors

package main

import "github.com/shack/tinysexpr/cmd"

func main() {
	cmd.Execute()
}
