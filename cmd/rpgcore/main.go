// Package main is the operational CLI for the RPG rules core: definition
// catalog validation and direct profile-store administration.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rpgcore",
	Short: "RPG rules core utilities",
	Long:  `rpgcore validates definition catalogs and administers stored player profiles.`,
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(profileCmd)
}
