package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/mailbox/internal/domain"
)

func newAddCmd() *cobra.Command {
	var fromFlag, toFlag, subjectFlag, bodyFlag, replyToFlag string
	var timestampFlag int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a message to the mailbox file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subjectFlag == "" {
				return fmt.Errorf("--subject is required")
			}

			body := bodyFlag
			if body == "-" {
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read body from stdin: %w", err)
				}
				body = string(b)
			}

			ts := timestampFlag
			if ts < 0 {
				ts = time.Now().Unix()
			}

			s, err := openOrCreateSession(cmd)
			if err != nil {
				return err
			}

			var email domain.Email
			if replyToFlag != "" {
				if _, ok := s.mb.Get(replyToFlag); !ok {
					s.logger.Warn("parent message not in mailbox; reply starts its own thread", "parent", replyToFlag)
				}
				email = domain.NewReply(ts, fromFlag, toFlag, subjectFlag, body, replyToFlag)
			} else {
				email = domain.NewEmail(ts, fromFlag, toFlag, subjectFlag, body)
			}
			if !s.mb.Add(&email) {
				return fmt.Errorf("message %s already exists", email.ID)
			}
			if err := s.save(); err != nil {
				return err
			}

			if jsonFlag {
				return fprintJSON(cmd.OutOrStdout(), jsonAction{OK: true, Action: "add", MessageID: email.ID})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s.\n", email.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "sender")
	cmd.Flags().StringVar(&toFlag, "to", "", "recipient")
	cmd.Flags().StringVar(&subjectFlag, "subject", "", "subject")
	cmd.Flags().StringVar(&bodyFlag, "body", "", "body (use '-' to read from stdin)")
	cmd.Flags().StringVar(&replyToFlag, "reply-to", "", "ID of the message being replied to")
	cmd.Flags().Int64Var(&timestampFlag, "timestamp", -1, "message timestamp (defaults to now, in Unix seconds)")
	return cmd
}

func newMarkCmd() *cobra.Command {
	var unreadFlag, threadFlag bool

	cmd := &cobra.Command{
		Use:   "mark <message-id>",
		Short: "Mark a message, or its whole thread, as read or unread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			var ok bool
			switch {
			case threadFlag && unreadFlag:
				ok = s.mb.MarkThreadUnread(id)
			case threadFlag:
				ok = s.mb.MarkThreadRead(id)
			case unreadFlag:
				ok = s.mb.MarkUnread(id)
			default:
				ok = s.mb.MarkRead(id)
			}
			if !ok {
				return fmt.Errorf("message %s not found", id)
			}
			if err := s.save(); err != nil {
				return err
			}

			action := "mark-read"
			if unreadFlag {
				action = "mark-unread"
			}
			if threadFlag {
				action += "-thread"
			}
			if jsonFlag {
				return fprintJSON(cmd.OutOrStdout(), jsonAction{OK: true, Action: action, MessageID: id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s (%s). %d unread.\n", id, action, s.mb.UnreadCount())
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadFlag, "unread", false, "mark as unread instead of read")
	cmd.Flags().BoolVar(&threadFlag, "thread", false, "apply to every message in the thread")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <message-id>",
		Short: "Delete a message from the mailbox file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if !s.mb.Delete(id) {
				return fmt.Errorf("message %s not found", id)
			}
			if err := s.save(); err != nil {
				return err
			}

			if jsonFlag {
				return fprintJSON(cmd.OutOrStdout(), jsonAction{OK: true, Action: "delete", MessageID: id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", id)
			return nil
		},
	}
	return cmd
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every message from the mailbox file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			n := s.mb.Count()
			s.mb.Clear()
			if err := s.save(); err != nil {
				return err
			}

			if jsonFlag {
				return fprintJSON(cmd.OutOrStdout(), jsonCount{Total: s.mb.Count(), Unread: s.mb.UnreadCount()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d messages.\n", n)
			return nil
		},
	}
	return cmd
}
