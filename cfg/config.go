package cfg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Accounts map[string]Account `yaml:"accounts"`
}

type Account struct {
	ServerURL           string        `yaml:"serverURL"`
	Username            string        `yaml:"username"`
	Password            string        `yaml:"password"`
	Folder              string        `yaml:"folder"`
	Days                *int          `yaml:"days"`
	AskDays             bool          `yaml:"askDays"`
	Confirm             bool          `yaml:"confirm"`
	DryRun              bool          `yaml:"dryRun"`
	NoTLS               bool          `yaml:"noTLS"`
	SkipTLSVerification bool          `yaml:"skipTLSVerification"`
	Compress            bool          `yaml:"compress"`
	Timeout             time.Duration `yaml:"timeout"`
	FetchRate           float64       `yaml:"fetchRate"`
	// Bandwidth limits the download rate in KiB per second
	Bandwidth float64 `yaml:"bandwidth"`
}

func newConfig() *Config {
	return &Config{
		Accounts: make(map[string]Account),
	}
}

// LoadFromFile loads the configuration from the file.
// A missing file gives an empty configuration.
func LoadFromFile(fileName string) (*Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newConfig(), nil
		}
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// Load the configuration from a reader
func Load(reader io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(reader)
	config := newConfig()
	err := decoder.Decode(config)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if config.Accounts == nil {
		config.Accounts = make(map[string]Account)
	}
	return config, nil
}

// Account returns the account from its name. With no name, it returns the only account
// of the configuration, or an empty account when there's none (to be configured from the environment).
func (c *Config) Account(name string) (Account, error) {
	if name != "" {
		account, ok := c.Accounts[name]
		if !ok {
			return Account{}, fmt.Errorf("account not found: %s", name)
		}
		return account, nil
	}
	switch len(c.Accounts) {
	case 0:
		return Account{}, nil
	case 1:
		for _, account := range c.Accounts {
			return account, nil
		}
	}
	return Account{}, fmt.Errorf("more than one account in the configuration, please choose one of %v", c.AccountNames())
}

func (c *Config) AccountNames() []string {
	names := make([]string, 0, len(c.Accounts))
	for name := range c.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
