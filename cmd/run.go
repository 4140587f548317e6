package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/creativeprojects/mailsweep/cfg"
	"github.com/creativeprojects/mailsweep/filter"
	"github.com/creativeprojects/mailsweep/term"
	"github.com/spf13/cobra"
)

type RunFlags struct {
	days      int
	folder    string
	askDays   bool
	confirm   bool
	dryRun    bool
	rate      float64
	bandwidth float64
	trace     bool
}

var runFlags RunFlags

var runCmd = &cobra.Command{
	Use:   "run [account]",
	Short: "Mark as read the unread emails older than a number of days",
	Long: "\nMark as read the unread emails older than a number of days.\n\n" +
		"The emails are marked as read by the server when they are downloaded:\n" +
		"there's no other modification made to the mailbox.",
	Args: cobra.MaximumNArgs(1),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(runCmd)
	flag := runCmd.Flags()
	flag.IntVarP(&runFlags.days, "days", "d", filter.DefaultDays, "mark as read the unread emails older than this number of days")
	flag.StringVarP(&runFlags.folder, "folder", "f", filter.DefaultFolder, "mailbox folder")
	flag.BoolVar(&runFlags.askDays, "ask-days", false, "ask for the number of days")
	flag.BoolVar(&runFlags.confirm, "confirm", false, "ask for confirmation before marking the emails as read")
	flag.BoolVarP(&runFlags.dryRun, "dry-run", "n", false, "display the emails but leave them unread")
	flag.Float64Var(&runFlags.rate, "rate", 0, "maximum number of emails downloaded per second (0 = no limit)")
	flag.Float64Var(&runFlags.bandwidth, "bandwidth", 0, "maximum download rate in KiB per second (0 = no limit)")
	flag.BoolVar(&runFlags.trace, "trace", false, "display the IMAP conversation (needs --verbose)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	account, err := loadAccount(args)
	if err != nil {
		return err
	}
	applyRunFlags(cmd.Flags().Changed, runFlags, &account)
	if err := account.Validate(); err != nil {
		return err
	}

	logger := debugLogger()
	remoteConfig := account.Remote(logger)
	remoteConfig.Trace = runFlags.trace

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sequence := filter.NewSequence(account.Options(), filter.RemoteDialer(remoteConfig), newPrompter(account), cmd.OutOrStdout())
	sequence.Log = logger

	result, err := sequence.Run(ctx)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		term.Warnf("%d email(s) could not be downloaded", result.Failed)
	}
	return nil
}

// loadAccount finds the account from the command line or the environment, then applies the environment variables
func loadAccount(args []string) (cfg.Account, error) {
	accountName := os.Getenv(cfg.EnvAccount)
	if len(args) > 0 {
		accountName = args[0]
	}
	if config == nil {
		config = &cfg.Config{}
	}
	account, err := config.Account(accountName)
	if err != nil {
		return account, err
	}
	return account.WithEnv(os.LookupEnv)
}

// applyRunFlags overrides the account with the flags set on the command line
func applyRunFlags(changed func(name string) bool, flags RunFlags, account *cfg.Account) {
	if changed("days") {
		days := flags.days
		account.Days = &days
	}
	if changed("folder") {
		account.Folder = flags.folder
	}
	if changed("ask-days") {
		account.AskDays = flags.askDays
	}
	if changed("confirm") {
		account.Confirm = flags.confirm
	}
	if changed("dry-run") {
		account.DryRun = flags.dryRun
	}
	if changed("rate") {
		account.FetchRate = flags.rate
	}
	if changed("bandwidth") {
		account.Bandwidth = flags.bandwidth
	}
}

func newPrompter(account cfg.Account) filter.Prompter {
	if account.AskDays || account.Confirm {
		return term.Prompter{}
	}
	return filter.AutoConfirm{}
}
