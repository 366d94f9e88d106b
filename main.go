package main

import "github.com/ferrigb/sistema-nota-consumidor/cmd"

func main() {
	cmd.Execute()
}
