package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/mailbox"
)

var (
	threadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	unreadThreadStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// fprintJSON encodes v as indented JSON to w.
func fprintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// truncate shortens s to at most maxLen characters, ending in an ellipsis
// when cut.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func unreadMarker(read bool) string {
	if read {
		return " "
	}
	return "*"
}

// printEmails writes emails as a table, or as JSON with --json.
func printEmails(w io.Writer, mb *mailbox.MailBox, emails []domain.Email) error {
	if jsonFlag {
		return fprintJSON(w, toJSONEmails(mb, emails))
	}
	if len(emails) == 0 {
		fmt.Fprintln(w, "No messages found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UNREAD\tTIME\tFROM\tSUBJECT\tID")
	for _, e := range emails {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			unreadMarker(isRead(mb, e.ID)), e.Timestamp,
			truncate(e.From, 30), truncate(e.Subject, 50), e.ID,
		)
	}
	return tw.Flush()
}

// printThreads writes each thread under a header, or as JSON with --json.
func printThreads(w io.Writer, mb *mailbox.MailBox, threads []domain.Thread) error {
	if jsonFlag {
		return fprintJSON(w, toJSONThreads(mb, threads))
	}
	if len(threads) == 0 {
		fmt.Fprintln(w, "No messages found.")
		return nil
	}
	for i := range threads {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeThread(w, mb, &threads[i]); err != nil {
			return err
		}
	}
	return nil
}

func printThread(w io.Writer, mb *mailbox.MailBox, t *domain.Thread) error {
	if jsonFlag {
		return fprintJSON(w, toJSONThread(mb, t))
	}
	return writeThread(w, mb, t)
}

func writeThread(w io.Writer, mb *mailbox.MailBox, t *domain.Thread) error {
	header := fmt.Sprintf("%s (%d messages, %d unread)", truncate(t.Subject, 60), t.MessageCount(), t.Unread)
	style := threadStyle
	if t.IsUnread() {
		style = unreadThreadStyle
	}
	fmt.Fprintln(w, style.Render(header))
	fmt.Fprintln(w, mutedStyle.Render("thread "+t.ID))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range t.Messages {
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\t%s\n",
			unreadMarker(isRead(mb, e.ID)), e.Timestamp,
			truncate(e.From, 30), truncate(e.Subject, 50), e.ID,
		)
	}
	return tw.Flush()
}

func printMessage(w io.Writer, e domain.Email, read bool) error {
	if jsonFlag {
		return fprintJSON(w, toJSONEmail(e, read))
	}
	status := "read"
	if !read {
		status = "unread"
	}
	fmt.Fprintf(w, "Subject: %s\n", e.Subject)
	fmt.Fprintf(w, "From: %s\n", e.From)
	fmt.Fprintf(w, "To: %s\n", e.To)
	fmt.Fprintf(w, "Timestamp: %d\n", e.Timestamp)
	fmt.Fprintf(w, "Status: %s\n", status)
	fmt.Fprintf(w, "Message ID: %s\n", e.ID)
	if !e.IsRoot() {
		fmt.Fprintf(w, "In-Reply-To: %s\n", e.ParentID)
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintln(w, e.Body)
	return nil
}
