package main

import "github.com/accessguide/accessguide-backend/internal/cli"

func main() {
	cli.Execute()
}
