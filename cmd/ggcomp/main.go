// Command ggcomp runs the composition canvas.
//
// Usage:
//
//	ggcomp run                          # open the interactive window
//	ggcomp replay drag.yaml -o out.png  # replay an event script headless
//	ggcomp drivers                      # list compositor drivers
package main

func main() {
	Execute()
}
