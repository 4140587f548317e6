package mailbox

import "strconv"

// MessageID is the identifier assigned by the server to a message (IMAP UID).
// It's only valid for the selected mailbox and the current UIDVALIDITY.
type MessageID struct {
	uid uint32
}

func NewMessageIDFromUint(uid uint32) MessageID {
	return MessageID{
		uid: uid,
	}
}

func NewMessageIDsFromUint(uids []uint32) []MessageID {
	ids := make([]MessageID, len(uids))
	for i, uid := range uids {
		ids[i] = NewMessageIDFromUint(uid)
	}
	return ids
}

func (i MessageID) IsZero() bool {
	return i.uid == 0
}

func (i MessageID) AsUint() uint32 {
	return i.uid
}

func (i MessageID) String() string {
	return strconv.FormatUint(uint64(i.uid), 10)
}
