// Package main is the entry point for the psydoom-tools application
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/psydoom/psydoom-tools/cmd"
)

const (
	envFlag      = "--env"
	envFlagEqual = "--env="
)

func main() {
	envFile, err := parseEnvFlag(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cmd.ExitUsage)
	}

	// The env file has to be loaded before cobra builds its flags, since flag
	// defaults come from the environment.
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
		os.Exit(cmd.ExitFailure)
	}

	os.Exit(cmd.Execute())
}

// parseEnvFlag extracts the value of --env from the command line.
func parseEnvFlag(args []string) (string, error) {
	for i, arg := range args {
		if arg == envFlag {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s flag requires a value", envFlag)
			}
			return args[i+1], nil
		}

		if strings.HasPrefix(arg, envFlagEqual) {
			return arg[len(envFlagEqual):], nil
		}
	}

	return "", nil
}

// loadEnvFile loads the specified environment file
func loadEnvFile(file string) error {
	if file == "" {
		file = ".env"
	}

	// Try to load the specified env file
	if err := godotenv.Load(file); err != nil {
		// If it's the default .env file and it doesn't exist, that's okay
		if file == ".env" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load env file '%s': %w", file, err)
	}

	return nil
}
