package main

import "github.com/dbsmedya/fieldwalk/cmd/fieldwalk/cmd"

func main() {
	cmd.Execute()
}
