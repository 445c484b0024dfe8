package main

import "github.com/radiofrance/maestro-allure/cmd"

func main() {
	cmd.Execute()
}
