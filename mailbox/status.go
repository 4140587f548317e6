package mailbox

type Status struct {
	// The mailbox name.
	Name string

	// The mailbox flags.
	Flags []string

	// The number of messages in this mailbox.
	Messages uint32
	// On SELECT, the sequence number of the first unread message.
	// On STATUS, the number of unread messages.
	Unseen uint32
	// Together with a UID, it is a unique identifier for a message.
	// Must be greater than or equal to 1.
	UidValidity uint32
	// Selected in read-only mode: fetching won't change the \Seen flag.
	ReadOnly bool
}
