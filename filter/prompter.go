package filter

// Prompter asks the operator for the run parameters
type Prompter interface {
	// Days returns the number of days to use, defaultDays being the configured value
	Days(defaultDays int) (int, error)
	// Confirm returns true when the operator agrees to continue
	Confirm(question string) (bool, error)
}

// AutoConfirm is the Prompter used when nobody is watching: it keeps the configured
// number of days and always agrees to continue.
type AutoConfirm struct{}

func (AutoConfirm) Days(defaultDays int) (int, error) {
	return defaultDays, nil
}

func (AutoConfirm) Confirm(question string) (bool, error) {
	return true, nil
}

var _ Prompter = AutoConfirm{}
