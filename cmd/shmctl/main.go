// Command shmctl creates, inspects and removes POSIX shared memory objects.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/srediag/shmopen/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cmd.Execute(ctx)
	stop()
	os.Exit(code)
}
