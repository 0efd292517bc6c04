package main

import (
	"os"

	"github.com/spf13/cobra"

	"evstack/eventstack"
)

// rootOptions holds global flags shared by the subcommands.
type rootOptions struct {
	configPath string
	threads    int
	lockFree   bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "evstack",
		Short: "Exercise the event stack and its parallel engine",
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML stack configuration file")
	cmd.PersistentFlags().IntVar(&opts.threads, "threads", 0, "thread hint for bulk operations (0 = hardware concurrency)")
	cmd.PersistentFlags().BoolVar(&opts.lockFree, "lockfree", false, "use the lock-free backing")

	cmd.AddCommand(newDemoCommand(opts))
	cmd.AddCommand(newSortBenchCommand(opts))

	return cmd
}

// stackOptions resolves the global flags, and optionally a YAML config
// file, into construction options. Flags win over the file only where
// they were actually set.
func (o *rootOptions) stackOptions(extra ...eventstack.Option[eventstack.Event]) ([]eventstack.Option[eventstack.Event], error) {
	var opts []eventstack.Option[eventstack.Event]
	if o.configPath != "" {
		data, err := os.ReadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		c, err := eventstack.ParseConfig(data)
		if err != nil {
			return nil, err
		}
		opts = eventstack.FromConfig[eventstack.Event](c)
	}
	if o.lockFree {
		opts = append(opts, eventstack.WithLockFree[eventstack.Event]())
	}
	if o.threads > 0 {
		opts = append(opts, eventstack.WithThreads[eventstack.Event](o.threads))
	}
	return append(opts, extra...), nil
}
