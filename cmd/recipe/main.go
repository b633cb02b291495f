// Command recipe declares and runs the bootstrap recipes of
// Autotools-based libraries.
package main

import "github.com/goplus/recipe/cmd/recipe/internal"

func main() {
	internal.Execute()
}
