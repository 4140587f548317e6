package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/creativeprojects/mailsweep/cfg"
	"github.com/creativeprojects/mailsweep/filter"
	"github.com/creativeprojects/mailsweep/lib"
	"github.com/creativeprojects/mailsweep/remote/imaptest"
	"github.com/creativeprojects/mailsweep/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMessage = "From: contact@example.org\r\n" +
	"To: contact@example.org\r\n" +
	"Subject: A little message, just for you\r\n" +
	"Date: Wed, 11 May 2016 14:31:59 +0000\r\n" +
	"Message-ID: <0000000@localhost/>\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"Hi there :)"

func changedFlags(names ...string) func(string) bool {
	return func(name string) bool {
		for _, changed := range names {
			if changed == name {
				return true
			}
		}
		return false
	}
}

func TestApplyRunFlags(t *testing.T) {
	days := 12
	flags := RunFlags{
		days:      3,
		folder:    "Archive",
		askDays:   true,
		confirm:   true,
		dryRun:    true,
		rate:      5,
		bandwidth: 256,
	}

	t.Run("nothing changed", func(t *testing.T) {
		account := cfg.Account{Folder: "INBOX", Days: &days}
		applyRunFlags(changedFlags(), flags, &account)
		assert.Equal(t, cfg.Account{Folder: "INBOX", Days: &days}, account)
	})

	t.Run("everything changed", func(t *testing.T) {
		account := cfg.Account{Folder: "INBOX", Days: &days}
		applyRunFlags(changedFlags("days", "folder", "ask-days", "confirm", "dry-run", "rate", "bandwidth"), flags, &account)
		require.NotNil(t, account.Days)
		assert.Equal(t, 3, *account.Days)
		assert.Equal(t, 12, days)
		assert.Equal(t, "Archive", account.Folder)
		assert.True(t, account.AskDays)
		assert.True(t, account.Confirm)
		assert.True(t, account.DryRun)
		assert.Equal(t, 5.0, account.FetchRate)
		assert.Equal(t, 256.0, account.Bandwidth)
	})

	t.Run("zero days from the command line", func(t *testing.T) {
		account := cfg.Account{Days: &days}
		applyRunFlags(changedFlags("days"), RunFlags{days: 0}, &account)
		assert.Equal(t, 0, *account.Days)
	})
}

func TestNewPrompter(t *testing.T) {
	assert.Equal(t, filter.AutoConfirm{}, newPrompter(cfg.Account{}))
	assert.Equal(t, term.Prompter{}, newPrompter(cfg.Account{Confirm: true}))
	assert.Equal(t, term.Prompter{}, newPrompter(cfg.Account{AskDays: true}))
}

func setTestConfig(t *testing.T, accounts map[string]cfg.Account) {
	previous := config
	config = &cfg.Config{Accounts: accounts}
	t.Cleanup(func() {
		config = previous
	})
}

func TestRunCommand(t *testing.T) {
	server := imaptest.NewServer(t)
	old := server.AddMessage(t, "Sweep", time.Now().AddDate(0, 0, -30), nil, sampleMessage)
	recent := server.AddMessage(t, "Sweep", time.Now().AddDate(0, 0, -1), nil, sampleMessage)

	setTestConfig(t, map[string]cfg.Account{
		"test": {
			ServerURL: server.Addr,
			Username:  imaptest.Username,
			Password:  imaptest.Password,
			NoTLS:     true,
			Folder:    "Sweep",
			Timeout:   10 * time.Second,
		},
	})

	out := &bytes.Buffer{}
	runCmd.SetOut(out)
	defer runCmd.SetOut(nil)

	err := runSweep(runCmd, []string{"test"})
	require.NoError(t, err)

	assert.True(t, server.IsSeen(t, "Sweep", old))
	assert.False(t, server.IsSeen(t, "Sweep", recent))
	assert.Contains(t, out.String(), "Subject: A little message, just for you\n")
	assert.Contains(t, out.String(), "Processed Emails: 1\n")
}

func TestRunCommandErrors(t *testing.T) {
	server := imaptest.NewServer(t)

	setTestConfig(t, map[string]cfg.Account{
		"wrong-password": {
			ServerURL: server.Addr,
			Username:  imaptest.Username,
			Password:  "not the password",
			NoTLS:     true,
		},
		"no-credentials": {
			ServerURL: server.Addr,
			NoTLS:     true,
		},
		"wrong-folder": {
			ServerURL: server.Addr,
			Username:  imaptest.Username,
			Password:  imaptest.Password,
			Folder:    "Nowhere",
			NoTLS:     true,
		},
	})

	err := runSweep(runCmd, []string{"wrong-password"})
	assert.ErrorIs(t, err, lib.ErrAuthentication)

	err = runSweep(runCmd, []string{"no-credentials"})
	assert.Error(t, err)

	err = runSweep(runCmd, []string{"wrong-folder"})
	assert.ErrorIs(t, err, lib.ErrMailbox)

	err = runSweep(runCmd, []string{"unknown"})
	assert.Error(t, err)
}
