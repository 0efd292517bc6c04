package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"evstack/parallel"
)

func newSortBenchCommand(root *rootOptions) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "sortbench",
		Short: "Time the engine's sequential and parallel sort paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := make([]int, size)
			for i := range base {
				base[i] = rand.Int()
			}

			for _, threads := range []int{1, root.threads} {
				items := make([]int, len(base))
				copy(items, base)

				started := time.Now()
				parallel.SortOrdered(items, threads)
				fmt.Fprintf(cmd.OutOrStdout(), "threads=%d (0 = hardware): %d elements in %s\n",
					threads, size, time.Since(started))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 1_000_000, "number of elements to sort")
	return cmd
}
