package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyresth/outexplain/internal/shell"
	"github.com/skyresth/outexplain/internal/ui"
)

// envCmd reports what outexplain detects about the current shell and
// terminal. Useful when capture or prompt segmentation misbehaves.
func envCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show detected shell and terminal capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := shell.Detect()
			info := shell.DetectTerminalInfo(sh)
			fmt.Println(ui.RenderTerminalInfo(info))
			return nil
		},
	}
}
