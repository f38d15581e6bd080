package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaicrotty88/MyStudyPlanner/cmd/planner/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Study planner service",
		Long:  `A personal study planner: subjects, tasks and logged study sessions, kept in a local snapshot and served over a small HTTP API.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewResetCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
