// Command api runs the water utility records service.
package main

func main() {
	Execute()
}
