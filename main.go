package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
