package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/gymsched/internal/credentials"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Generate a GYMSCHED_CREDENTIALS_KEY value (base64)",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := credentials.NewKey()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "export GYMSCHED_CREDENTIALS_KEY=%s\n", key)
			return nil
		},
	}
}
