package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creativeprojects/mailsweep/mailbox"
	"github.com/creativeprojects/mailsweep/remote"
	"github.com/creativeprojects/mailsweep/term"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var foldersCmd = &cobra.Command{
	Use:   "folders [account]",
	Short: "Display the list of folders with their number of unread emails",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFolders,
}

func init() {
	rootCmd.AddCommand(foldersCmd)
}

type folderLister interface {
	ListMailbox() ([]mailbox.Info, error)
	MailboxStatus(name string) (*mailbox.Status, error)
}

func runFolders(cmd *cobra.Command, args []string) error {
	account, err := loadAccount(args)
	if err != nil {
		return err
	}
	if err := account.Validate(); err != nil {
		return err
	}
	session, err := remote.NewImap(account.Remote(debugLogger()))
	if err != nil {
		return err
	}
	defer closeSession(session)

	data, err := foldersTable(session)
	if err != nil {
		return err
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

func foldersTable(session folderLister) (pterm.TableData, error) {
	mailboxes, err := session.ListMailbox()
	if err != nil {
		return nil, err
	}
	data := pterm.TableData{
		{"Folder", "Messages", "Unread", "Flags"},
	}
	for _, info := range mailboxes {
		var messages, unread string
		if info.Selectable() {
			status, err := session.MailboxStatus(info.Name)
			if err == nil {
				messages = strconv.FormatUint(uint64(status.Messages), 10)
				unread = strconv.FormatUint(uint64(status.Unseen), 10)
			}
		}
		name := strings.Repeat("  ", info.Level()) + info.Name
		data = append(data, []string{name, messages, unread, displayFlags(info.Attributes)})
	}
	return data, nil
}

func displayFlags(source []string) string {
	flags := make([]string, len(source))
	for i, flag := range source {
		flags[i] = strings.TrimPrefix(flag, "\\")
	}
	return strings.Join(flags, ", ")
}

func closeSession(session io.Closer) {
	if err := session.Close(); err != nil {
		term.Warnf("error closing the connection: %s", err)
	}
}
