package main

// greet prints a friendly message.
func greet(name string) {
	message := "hello, " + name
	println(message)
}
