package cfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creativeprojects/mailsweep/lib"
	"github.com/joho/godotenv"
)

const (
	EnvConfig    = "MAILSWEEP_CONFIG"
	EnvAccount   = "MAILSWEEP_ACCOUNT"
	EnvServer    = "MAILSWEEP_SERVER"
	EnvUsername  = "MAILSWEEP_USERNAME"
	EnvPassword  = "MAILSWEEP_PASSWORD"
	EnvFolder    = "MAILSWEEP_FOLDER"
	EnvDays      = "MAILSWEEP_DAYS"
	EnvConfirm   = "MAILSWEEP_CONFIRM"
	EnvDryRun    = "MAILSWEEP_DRY_RUN"
	EnvTimeout   = "MAILSWEEP_TIMEOUT"
	EnvFetchRate = "MAILSWEEP_FETCH_RATE"
)

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// LoadEnvFiles adds the variables from the files into the environment.
// Variables already set are not overridden, and missing files are ignored.
func LoadEnvFiles(filenames ...string) error {
	for _, filename := range filenames {
		err := godotenv.Load(filename)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot load %q: %w", filename, err)
		}
	}
	return nil
}

// WithEnv returns a copy of the account with the values found in the environment
func (a Account) WithEnv(lookup LookupFunc) (Account, error) {
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		if !ok {
			return "", false
		}
		value = strings.TrimSpace(value)
		return value, value != ""
	}
	if value, ok := get(EnvServer); ok {
		a.ServerURL = value
	}
	if value, ok := get(EnvUsername); ok {
		a.Username = value
	}
	if value, ok := get(EnvPassword); ok {
		a.Password = value
	}
	if value, ok := get(EnvFolder); ok {
		a.Folder = value
	}
	if value, ok := get(EnvDays); ok {
		days, err := lib.ParseDays(value)
		if err != nil {
			return a, fmt.Errorf("%s: %w", EnvDays, err)
		}
		a.Days = &days
	}
	if value, ok := get(EnvConfirm); ok {
		confirm, err := strconv.ParseBool(value)
		if err != nil {
			return a, fmt.Errorf("%s: invalid boolean %q", EnvConfirm, value)
		}
		a.Confirm = confirm
	}
	if value, ok := get(EnvDryRun); ok {
		dryRun, err := strconv.ParseBool(value)
		if err != nil {
			return a, fmt.Errorf("%s: invalid boolean %q", EnvDryRun, value)
		}
		a.DryRun = dryRun
	}
	if value, ok := get(EnvTimeout); ok {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return a, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		a.Timeout = timeout
	}
	if value, ok := get(EnvFetchRate); ok {
		fetchRate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return a, fmt.Errorf("%s: invalid number %q", EnvFetchRate, value)
		}
		a.FetchRate = fetchRate
	}
	return a, nil
}
