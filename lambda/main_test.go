package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creativeprojects/mailsweep/cfg"
	"github.com/creativeprojects/mailsweep/remote/imaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMessage = "From: contact@example.org\r\n" +
	"To: contact@example.org\r\n" +
	"Subject: A little message, just for you\r\n" +
	"Date: Wed, 11 May 2016 14:31:59 +0000\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"Hi there :)"

func mapLookup(env map[string]string) cfg.LookupFunc {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "mailsweep.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))
	return filename
}

func TestLoadAccountFromEnvironmentOnly(t *testing.T) {
	account, err := loadAccount(mapLookup(map[string]string{
		cfg.EnvConfig:   filepath.Join(t.TempDir(), "missing.yaml"),
		cfg.EnvUsername: "user",
		cfg.EnvPassword: "secret",
		cfg.EnvDays:     "7",
	}))
	require.NoError(t, err)
	assert.Equal(t, "user", account.Username)
	assert.Equal(t, 7, account.Options().Days)
	assert.Equal(t, "INBOX", account.Options().Folder)
}

func TestLoadAccountFromFile(t *testing.T) {
	filename := writeConfig(t, `
accounts:
  home:
    username: home@example.com
    folder: Archive
  work:
    username: work@example.com
`)

	account, err := loadAccount(mapLookup(map[string]string{
		cfg.EnvConfig:   filename,
		cfg.EnvAccount:  "home",
		cfg.EnvPassword: "secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, "home@example.com", account.Username)
	assert.Equal(t, "Archive", account.Folder)

	_, err = loadAccount(mapLookup(map[string]string{
		cfg.EnvConfig:   filename,
		cfg.EnvPassword: "secret",
	}))
	assert.Error(t, err, "account name is needed when there's more than one")
}

func TestLoadAccountMissingPassword(t *testing.T) {
	_, err := loadAccount(mapLookup(map[string]string{
		cfg.EnvConfig:   filepath.Join(t.TempDir(), "missing.yaml"),
		cfg.EnvUsername: "user",
	}))
	assert.Error(t, err)
}

func TestHandleRequest(t *testing.T) {
	server := imaptest.NewServer(t)
	old := server.AddMessage(t, "Lambda", time.Now().AddDate(0, 0, -30), nil, sampleMessage)
	server.AddMessage(t, "Lambda", time.Now(), nil, sampleMessage)

	filename := writeConfig(t, `
accounts:
  test:
    serverURL: `+server.Addr+`
    noTLS: true
    folder: Lambda
    confirm: true
`)
	t.Setenv(cfg.EnvConfig, filename)
	t.Setenv(cfg.EnvAccount, "test")
	t.Setenv(cfg.EnvUsername, imaptest.Username)
	t.Setenv(cfg.EnvPassword, imaptest.Password)

	result, err := HandleRequest(context.Background(), []byte(`{"source":"aws.events"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.FinalUnread)
	assert.False(t, result.Cancelled)
	assert.True(t, server.IsSeen(t, "Lambda", old))
}
