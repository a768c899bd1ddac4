//go:build !ebiten

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Show the particle backgrounds in a desktop window (requires -tags ebiten)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("the window command requires the ebiten build tag; rebuild with `go build -tags ebiten`")
		},
	}
}
