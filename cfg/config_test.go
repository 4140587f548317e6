package cfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creativeprojects/mailsweep/filter"
	"github.com/creativeprojects/mailsweep/lib"
	"github.com/creativeprojects/mailsweep/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
accounts:
  gmail:
    serverURL: imap.gmail.com:993
    username: user@gmail.com
    days: 12
    confirm: true
    timeout: 30s
  local:
    serverURL: localhost:1143
    username: user
    password: secret
    folder: Archive
    days: 0
    noTLS: true
    compress: true
    fetchRate: 2.5
    bandwidth: 512
`

func TestLoadConfig(t *testing.T) {
	config, err := Load(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"gmail", "local"}, config.AccountNames())

	gmail, err := config.Account("gmail")
	require.NoError(t, err)
	assert.Equal(t, "imap.gmail.com:993", gmail.ServerURL)
	assert.Equal(t, "user@gmail.com", gmail.Username)
	assert.Empty(t, gmail.Password)
	require.NotNil(t, gmail.Days)
	assert.Equal(t, 12, *gmail.Days)
	assert.True(t, gmail.Confirm)
	assert.Equal(t, 30*time.Second, gmail.Timeout)

	local, err := config.Account("local")
	require.NoError(t, err)
	require.NotNil(t, local.Days)
	assert.Equal(t, 0, *local.Days)
	assert.True(t, local.NoTLS)
	assert.True(t, local.Compress)
	assert.Equal(t, 2.5, local.FetchRate)
	assert.Equal(t, 512.0, local.Bandwidth)

	_, err = config.Account("unknown")
	assert.Error(t, err)

	// more than one account
	_, err = config.Account("")
	assert.Error(t, err)
}

func TestEmptyConfig(t *testing.T) {
	config, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, config.Accounts)

	account, err := config.Account("")
	require.NoError(t, err)
	assert.Equal(t, Account{}, account)
}

func TestSingleAccountIsDefault(t *testing.T) {
	config, err := Load(strings.NewReader("accounts:\n  only:\n    username: me\n"))
	require.NoError(t, err)

	account, err := config.Account("")
	require.NoError(t, err)
	assert.Equal(t, "me", account.Username)
}

func TestLoadFromFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "mailsweep.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(sampleConfig), 0600))

	config, err := LoadFromFile(filename)
	require.NoError(t, err)
	assert.Len(t, config.Accounts, 2)
}

func TestLoadFromMissingFile(t *testing.T) {
	config, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, config.Accounts)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load(strings.NewReader("accounts: [this is not a map"))
	assert.Error(t, err)
}

func lookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestAccountWithEnv(t *testing.T) {
	days := 12
	account := Account{
		ServerURL: "imap.gmail.com:993",
		Username:  "file-user",
		Days:      &days,
	}

	result, err := account.WithEnv(lookup(map[string]string{
		EnvUsername:  "env-user",
		EnvPassword:  " secret ",
		EnvServer:    "",
		EnvDays:      "20",
		EnvConfirm:   "true",
		EnvDryRun:    "1",
		EnvTimeout:   "1m",
		EnvFetchRate: "4",
		EnvFolder:    "Archive",
	}))
	require.NoError(t, err)

	assert.Equal(t, "imap.gmail.com:993", result.ServerURL)
	assert.Equal(t, "env-user", result.Username)
	assert.Equal(t, "secret", result.Password)
	assert.Equal(t, "Archive", result.Folder)
	require.NotNil(t, result.Days)
	assert.Equal(t, 20, *result.Days)
	assert.True(t, result.Confirm)
	assert.True(t, result.DryRun)
	assert.Equal(t, time.Minute, result.Timeout)
	assert.Equal(t, 4.0, result.FetchRate)

	// original account is not modified
	assert.Equal(t, 12, *account.Days)
	assert.Equal(t, "file-user", account.Username)
}

func TestAccountWithInvalidEnv(t *testing.T) {
	fixtures := []struct {
		key   string
		value string
	}{
		{EnvDays, "-1"},
		{EnvDays, "two weeks"},
		{EnvConfirm, "maybe"},
		{EnvDryRun, "nope"},
		{EnvTimeout, "30"},
		{EnvFetchRate, "fast"},
	}

	for _, fixture := range fixtures {
		t.Run(fixture.key+"="+fixture.value, func(t *testing.T) {
			_, err := Account{}.WithEnv(lookup(map[string]string{fixture.key: fixture.value}))
			assert.Error(t, err)
		})
	}

	_, err := Account{}.WithEnv(lookup(map[string]string{EnvDays: "-1"}))
	assert.ErrorIs(t, err, lib.ErrInvalidDays)
}

func TestLoadEnvFiles(t *testing.T) {
	filename := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(filename, []byte("MAILSWEEP_TEST_LOAD_ENV=from-file\n"), 0600))
	t.Cleanup(func() {
		_ = os.Unsetenv("MAILSWEEP_TEST_LOAD_ENV")
	})

	err := LoadEnvFiles(filepath.Join(t.TempDir(), "missing.env"), filename)
	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv("MAILSWEEP_TEST_LOAD_ENV"))
}

func TestAccountValidate(t *testing.T) {
	days := -2
	fixtures := []struct {
		name    string
		account Account
		valid   bool
	}{
		{"empty", Account{}, false},
		{"no password", Account{Username: "user"}, false},
		{"no username", Account{Password: "secret"}, false},
		{"negative days", Account{Username: "user", Password: "secret", Days: &days}, false},
		{"valid", Account{Username: "user", Password: "secret"}, true},
	}

	for _, fixture := range fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			err := fixture.account.Validate()
			if fixture.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAccountOptions(t *testing.T) {
	options := Account{}.Options()
	assert.Equal(t, filter.NewOptions(), options)
	assert.Equal(t, filter.DefaultDays, options.Days)
	assert.Equal(t, filter.DefaultFolder, options.Folder)

	days := 0
	options = Account{Folder: "Newsletters", Days: &days, Confirm: true, DryRun: true, FetchRate: 3}.Options()
	assert.Equal(t, filter.Options{
		Folder:    "Newsletters",
		Days:      0,
		Confirm:   true,
		DryRun:    true,
		FetchRate: 3,
	}, options)
}

func TestAccountRemote(t *testing.T) {
	config := Account{Username: "user", Password: "secret"}.Remote(nil)
	assert.Equal(t, remote.DefaultServerURL, config.ServerURL)
	assert.Equal(t, "user", config.Username)
	assert.Equal(t, "secret", config.Password)

	assert.Zero(t, config.Bandwidth)

	config = Account{ServerURL: "localhost:143", NoTLS: true, Compress: true, Timeout: time.Second, Bandwidth: 100}.Remote(&lib.NoLog{})
	assert.Equal(t, "localhost:143", config.ServerURL)
	assert.True(t, config.NoTLS)
	assert.True(t, config.Compress)
	assert.Equal(t, time.Second, config.Timeout)
	assert.Equal(t, 102400.0, config.Bandwidth)
	assert.NotNil(t, config.DebugLogger)
}
