package main

import "bank-backoffice/cmd/bankctl/commands"

func main() {
	commands.Execute()
}
