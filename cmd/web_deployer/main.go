package main

import (
	"context"

	"web-deployer/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
