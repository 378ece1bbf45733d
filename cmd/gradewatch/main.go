package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	zlog "github.com/mwhitfield/gradewatch/pkg/log"
)

var log *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "gradewatch",
	Short: "Canvas grade checker",
}

func initCommands() {
	rootCmd.AddCommand(makeGradesCommand())
	rootCmd.AddCommand(makeHistoryCommand())
	rootCmd.AddCommand(makeStoreCommand())
}

func init() {
	log = zlog.InitDev()
	initCommands()
}

func main() {
	defer zlog.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s\n", err.Error())
		os.Exit(1)
	}
}
