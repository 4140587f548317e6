// Package imaptest runs an in-memory IMAP server for the unit tests.
package imaptest

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/creativeprojects/mailsweep/mailbox"
	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/backend"
	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/server"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

const (
	Username = "username"
	Password = "password"
)

type Server struct {
	Addr    string
	backend *memory.Backend
	server  *server.Server
	wg      sync.WaitGroup
	once    sync.Once
}

// NewServer starts a server accepting plain text authentication on a local port.
// The server is stopped at the end of the test.
func NewServer(t *testing.T) *Server {
	t.Helper()

	// Create a memory backend
	be := memory.New()

	// Create a new server
	srv := server.New(&seenOnFetchBackend{Backend: be})
	// Since we will use this server for testing only, we can allow plain text
	// authentication over unencrypted connections
	srv.AllowInsecureAuth = true
	srv.Enable(compress.NewExtension())

	listener, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)

	s := &Server{
		Addr:    listener.Addr().String(),
		backend: be,
		server:  srv,
	}
	t.Logf("Starting IMAP server at %s", s.Addr)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = srv.Serve(listener)
	}()
	t.Cleanup(s.Close)
	return s
}

func (s *Server) Close() {
	s.once.Do(func() {
		_ = s.server.Close()
		s.wg.Wait()
	})
}

// AddMessage appends a message to the folder (created when missing) and returns its UID
func (s *Server) AddMessage(t *testing.T, folder string, date time.Time, flags []string, body string) mailbox.MessageID {
	t.Helper()

	mbox := s.mailbox(t, folder)
	err := mbox.CreateMessage(flags, date, bytes.NewBufferString(body))
	require.NoError(t, err)

	last := mbox.Messages[len(mbox.Messages)-1]
	return mailbox.NewMessageIDFromUint(last.Uid)
}

// DeleteMessage removes a message without notifying the connected clients
func (s *Server) DeleteMessage(t *testing.T, folder string, id mailbox.MessageID) {
	t.Helper()

	mbox := s.mailbox(t, folder)
	for i, msg := range mbox.Messages {
		if msg.Uid == id.AsUint() {
			mbox.Messages = append(mbox.Messages[:i], mbox.Messages[i+1:]...)
			return
		}
	}
	t.Fatalf("message %s not found in %q", id, folder)
}

// IsSeen returns true when the message has the \Seen flag on the server
func (s *Server) IsSeen(t *testing.T, folder string, id mailbox.MessageID) bool {
	t.Helper()

	mbox := s.mailbox(t, folder)
	for _, msg := range mbox.Messages {
		if msg.Uid != id.AsUint() {
			continue
		}
		for _, flag := range msg.Flags {
			if flag == imap.SeenFlag {
				return true
			}
		}
		return false
	}
	t.Fatalf("message %s not found in %q", id, folder)
	return false
}

func (s *Server) mailbox(t *testing.T, folder string) *memory.Mailbox {
	user, err := s.backend.Login(nil, Username, Password)
	require.NoError(t, err)

	mbox, err := user.GetMailbox(folder)
	if err != nil {
		require.NoError(t, user.CreateMailbox(folder))
		mbox, err = user.GetMailbox(folder)
		require.NoError(t, err)
	}
	return mbox.(*memory.Mailbox)
}

// seenOnFetchBackend makes the memory backend set the \Seen flag when the body
// of a message is fetched without PEEK, like a real server does (RFC 3501 6.4.5)
type seenOnFetchBackend struct {
	backend.Backend
}

func (b *seenOnFetchBackend) Login(connInfo *imap.ConnInfo, username, password string) (backend.User, error) {
	user, err := b.Backend.Login(connInfo, username, password)
	if err != nil {
		return nil, err
	}
	return &seenOnFetchUser{User: user}, nil
}

type seenOnFetchUser struct {
	backend.User
}

func (u *seenOnFetchUser) GetMailbox(name string) (backend.Mailbox, error) {
	mbox, err := u.User.GetMailbox(name)
	if err != nil {
		return nil, err
	}
	return &seenOnFetchMailbox{Mailbox: mbox}, nil
}

type seenOnFetchMailbox struct {
	backend.Mailbox
}

func (m *seenOnFetchMailbox) ListMessages(uid bool, seqSet *imap.SeqSet, items []imap.FetchItem, ch chan<- *imap.Message) error {
	for _, item := range items {
		section, err := imap.ParseBodySectionName(item)
		if err != nil || section.Peek {
			continue
		}
		err = m.Mailbox.UpdateMessagesFlags(uid, seqSet, imap.AddFlags, []string{imap.SeenFlag})
		if err != nil {
			close(ch)
			return err
		}
		break
	}
	return m.Mailbox.ListMessages(uid, seqSet, items, ch)
}
