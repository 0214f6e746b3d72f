// Command contfrac evaluates continued fraction arithmetic from the command
// line.
package main

func main() {
	Execute()
}
