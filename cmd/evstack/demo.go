package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"evstack/eventstack"
)

func newDemoCommand(root *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Push events, filter, sort and round-trip them through the codec",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := root.stackOptions(
				eventstack.WithCodec[eventstack.Event](eventstack.EventCodec{}),
			)
			if err != nil {
				return err
			}
			s := eventstack.New(opts...)

			for i := 1; i <= count; i++ {
				if err := s.Push(eventstack.NewEvent(i, fmt.Sprintf("event-%d", i))); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d events, size=%d\n", count, s.Size())

			if err := s.Filter(func(e eventstack.Event) bool { return e.Seq%2 == 0 }); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kept even sequences, size=%d\n", s.Size())

			if err := s.SortFunc(eventstack.Event.Less); err != nil {
				return err
			}
			top, ok := s.Peek()
			if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "top after sort: %s\n", top)
			}

			wire, err := s.Serialize()
			if err != nil {
				return err
			}
			if err := s.Deserialize(wire); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "serialized %d bytes, round-trip size=%d\n", len(wire), s.Size())
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1000, "number of events to push")
	return cmd
}
