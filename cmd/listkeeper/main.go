package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/listkeeper-dev/listkeeper/cmd/listkeeper/commands"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment as-is")
	}

	commands.Execute()
}
