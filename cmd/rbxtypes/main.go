package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/teranos/rbxtypes/cmd/rbxtypes/commands"
	"github.com/teranos/rbxtypes/errors"
	"github.com/teranos/rbxtypes/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := commands.NewRootCmd()
	if len(os.Args) == 1 {
		// generate is the default command
		root.SetArgs([]string{"generate"})
	}

	err := root.ExecuteContext(ctx)
	logger.Cleanup()
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
