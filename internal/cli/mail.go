package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var unreadFlag bool
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			emails := s.mb.TimestampView()
			if unreadFlag {
				emails = s.mb.Unread()
			}
			if limitFlag > 0 && len(emails) > limitFlag {
				emails = emails[:limitFlag]
			}
			return printEmails(cmd.OutOrStdout(), s.mb, emails)
		},
	}

	cmd.Flags().BoolVar(&unreadFlag, "unread", false, "only unread messages")
	cmd.Flags().IntVar(&limitFlag, "limit", 0, "max messages to show (0 for all)")
	return cmd
}

func newRangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range <start> <end>",
		Short: "List messages with start <= timestamp <= end, earliest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid start %q: %w", args[0], err)
			}
			end, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid end %q: %w", args[1], err)
			}
			if start < 0 || end < start {
				return fmt.Errorf("range requires 0 <= start <= end, got %d..%d", start, end)
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			return printEmails(cmd.OutOrStdout(), s.mb, s.mb.InRange(start, end))
		},
	}
	return cmd
}

func newThreadsCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List messages grouped by thread, most recent activity first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			threads := s.mb.Threads()
			if limitFlag > 0 && len(threads) > limitFlag {
				threads = threads[:limitFlag]
			}
			return printThreads(cmd.OutOrStdout(), s.mb, threads)
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 0, "max threads to show (0 for all)")
	return cmd
}

func newThreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread <message-id>",
		Short: "Show the thread containing a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			thread, ok := s.mb.Thread(args[0])
			if !ok {
				return fmt.Errorf("message %s not found", args[0])
			}
			return printThread(cmd.OutOrStdout(), s.mb, &thread)
		},
	}
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <message-id>",
		Short: "Show a single message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			email, ok := s.mb.Get(args[0])
			if !ok {
				return fmt.Errorf("message %s not found", args[0])
			}
			read, err := s.mb.IsRead(email.ID)
			if err != nil {
				return err
			}
			return printMessage(cmd.OutOrStdout(), email, read)
		},
	}
	return cmd
}

func newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count messages and unread messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			counts := jsonCount{Total: s.mb.Count(), Unread: s.mb.UnreadCount()}
			if jsonFlag {
				return fprintJSON(out, counts)
			}
			fmt.Fprintf(out, "%d messages, %d unread\n", counts.Total, counts.Unread)
			return nil
		},
	}
	return cmd
}
