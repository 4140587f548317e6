package remote

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/creativeprojects/mailsweep/lib"
	"github.com/creativeprojects/mailsweep/limitio"
	"github.com/creativeprojects/mailsweep/mailbox"
	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/client"
)

const DefaultServerURL = "imap.gmail.com:993"

type Config struct {
	ServerURL           string
	Username            string
	Password            string
	DebugLogger         lib.Logger
	NoTLS               bool
	SkipTLSVerification bool
	// Compress enables COMPRESS=DEFLATE when the server supports it
	Compress bool
	// Timeout applies to dialing and to each command (0 means no timeout)
	Timeout time.Duration
	// Trace sends the protocol conversation after the login to the debug logger
	Trace bool
	// Bandwidth limits the download rate in bytes per second (0 means no limit)
	Bandwidth float64
}

// Imap is an authenticated session on an IMAP server.
//
// There's no explicit "mark as read" operation: fetching the full body of a message
// (BODY[] without PEEK) makes the server set the \Seen flag on it.
type Imap struct {
	client   *client.Client
	log      lib.Logger
	selected *mailbox.Status
}

// NewImap connects and authenticates to the server.
func NewImap(cfg Config) (*Imap, error) {
	log := cfg.DebugLogger
	if log == nil {
		log = &lib.NoLog{}
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: missing username or password", lib.ErrAuthentication)
	}

	log.Printf("Connecting to server %s...", cfg.ServerURL)
	imapClient, err := dial(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", lib.ErrConnection, cfg.ServerURL, err)
	}
	log.Print("Connected")
	imapClient.Timeout = cfg.Timeout

	if err := imapClient.Login(cfg.Username, cfg.Password); err != nil {
		// release the connection slot on the server
		_ = imapClient.Logout()
		return nil, fmt.Errorf("%w: %v", lib.ErrAuthentication, err)
	}
	log.Printf("Logged in as %s", cfg.Username)

	// the trace starts after the login: a password sent as a literal would not be redacted
	if cfg.Trace {
		imapClient.SetDebug(lib.NewLogWriter(log))
	}

	if caps, err := imapClient.Capability(); err == nil {
		log.Printf("capabilities: %+v", caps)
	}

	if cfg.Compress {
		enableCompression(imapClient, log)
	}

	return &Imap{
		client: imapClient,
		log:    log,
	}, nil
}

func dial(cfg Config) (*client.Client, error) {
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	if cfg.Bandwidth > 0 {
		return dialLimited(dialer, cfg)
	}
	if cfg.NoTLS {
		return client.DialWithDialer(dialer, cfg.ServerURL)
	}
	return client.DialWithDialerTLS(dialer, cfg.ServerURL, tlsConfig(cfg))
}

// dialLimited opens the connection itself to throttle it before the IMAP client starts reading
func dialLimited(dialer *net.Dialer, cfg Config) (*client.Client, error) {
	var conn net.Conn
	var err error
	if cfg.NoTLS {
		conn, err = dialer.Dial("tcp", cfg.ServerURL)
	} else {
		conn, err = tls.DialWithDialer(dialer, "tcp", cfg.ServerURL, tlsConfig(cfg))
	}
	if err != nil {
		return nil, err
	}
	conn = limitio.NewConn(conn, cfg.Bandwidth)

	// the greeting is read before we get a chance to set the client timeout
	if cfg.Timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(cfg.Timeout)); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	imapClient, err := client.New(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if cfg.Timeout > 0 {
		_ = conn.SetDeadline(time.Time{})
	}
	return imapClient, nil
}

func tlsConfig(cfg Config) *tls.Config {
	tlsConfig := &tls.Config{}
	if cfg.SkipTLSVerification {
		tlsConfig.InsecureSkipVerify = true
	}
	return tlsConfig
}

func enableCompression(imapClient *client.Client, log lib.Logger) {
	compressClient := compress.NewClient(imapClient)
	supported, err := compressClient.SupportCompress(compress.Deflate)
	if err != nil || !supported {
		log.Print("IMAP server does NOT support COMPRESS=DEFLATE extension")
		return
	}
	if err := compressClient.Compress(compress.Deflate); err != nil {
		log.Printf("cannot enable compression: %s", err)
		return
	}
	log.Print("Compression enabled")
}

// Close unselects the mailbox (if any) and logs out. It's safe to call it more than once.
func (i *Imap) Close() error {
	if i.client == nil {
		return nil
	}
	var closeErr error
	if i.selected != nil {
		i.log.Printf("Closing mailbox %q", i.selected.Name)
		closeErr = i.client.Close()
		i.selected = nil
	}
	i.log.Print("Closing connection")
	err := i.client.Logout()
	i.client = nil
	if closeErr != nil {
		return closeErr
	}
	if errors.Is(err, client.ErrAlreadyLoggedOut) {
		return nil
	}
	return err
}

// SelectMailbox opens the mailbox in read-write mode: in read-only mode the server
// would not be allowed to set the \Seen flag when fetching messages.
func (i *Imap) SelectMailbox(name string) (*mailbox.Status, error) {
	i.log.Printf("Selecting mailbox %q", name)
	status, err := i.client.Select(name, false)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", lib.ErrMailbox, name, err)
	}
	i.selected = &mailbox.Status{
		Name:        status.Name,
		Flags:       status.Flags,
		Messages:    status.Messages,
		Unseen:      status.Unseen,
		UidValidity: status.UidValidity,
		ReadOnly:    status.ReadOnly,
	}
	if status.ReadOnly {
		i.log.Printf("mailbox %q is read-only: messages will stay unread", name)
	}
	return i.selected, nil
}

// Search returns the unread messages received before the date.
// Both conditions are set on the same criteria, which the protocol defines as a conjunction.
func (i *Imap) Search(before time.Time) ([]mailbox.MessageID, error) {
	if i.selected == nil {
		return nil, lib.ErrNotSelected
	}
	criteria := imap.NewSearchCriteria()
	criteria.Before = before
	criteria.WithoutFlags = []string{imap.SeenFlag}

	i.log.Printf("searching for unread emails before %s", lib.FormatIMAPDate(before))
	uids, err := i.client.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return mailbox.NewMessageIDsFromUint(uids), nil
}

// CountUnread runs a new search on the selected mailbox: it reflects the state of the server at the time of the call.
func (i *Imap) CountUnread() (int, error) {
	if i.selected == nil {
		return 0, lib.ErrNotSelected
	}
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}

	uids, err := i.client.UidSearch(criteria)
	if err != nil {
		return 0, fmt.Errorf("search failed: %w", err)
	}
	return len(uids), nil
}

// Fetch downloads the full message. Unless peek is true the server marks the message as read.
func (i *Imap) Fetch(id mailbox.MessageID, peek bool) (*mailbox.Message, error) {
	if i.selected == nil {
		return nil, lib.ErrNotSelected
	}
	seqset := new(imap.SeqSet)
	seqset.AddNum(id.AsUint())

	section := &imap.BodySectionName{Peek: peek}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchFlags, imap.FetchUid, imap.FetchInternalDate, imap.FetchRFC822Size}

	receiver := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- i.client.UidFetch(seqset, items, receiver)
	}()

	var message *mailbox.Message
	for msg := range receiver {
		if msg.Uid != id.AsUint() {
			// unsolicited flags update on another message
			continue
		}
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		i.log.Printf("Received IMAP message uid=%d flags=%+v date=%q", msg.Uid, msg.Flags, msg.InternalDate)
		message = &mailbox.Message{
			Uid:          mailbox.NewMessageIDFromUint(msg.Uid),
			Flags:        msg.Flags,
			InternalDate: msg.InternalDate,
			Size:         msg.Size,
			Body:         body,
		}
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w uid=%s: %v", lib.ErrFetch, id, err)
	}
	if message == nil {
		return nil, fmt.Errorf("%w: uid=%s", lib.ErrMessageNotFound, id)
	}
	return message, nil
}

func (i *Imap) ListMailbox() ([]mailbox.Info, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- i.client.List("", "*", mailboxes)
	}()

	i.log.Print("Listing mailboxes:")
	info := make([]mailbox.Info, 0, 10)
	for m := range mailboxes {
		i.log.Printf("* %q: %+v (delimiter = %q)", m.Name, m.Attributes, m.Delimiter)
		info = append(info, mailbox.Info{
			Delimiter:  m.Delimiter,
			Name:       m.Name,
			Attributes: m.Attributes,
		})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: cannot list mailboxes: %v", lib.ErrMailbox, err)
	}
	return info, nil
}

// MailboxStatus asks for the message counts without selecting the mailbox
func (i *Imap) MailboxStatus(name string) (*mailbox.Status, error) {
	status, err := i.client.Status(name, []imap.StatusItem{imap.StatusMessages, imap.StatusUnseen, imap.StatusUidValidity})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", lib.ErrMailbox, name, err)
	}
	return &mailbox.Status{
		Name:        status.Name,
		Flags:       status.Flags,
		Messages:    status.Messages,
		Unseen:      status.Unseen,
		UidValidity: status.UidValidity,
		ReadOnly:    status.ReadOnly,
	}, nil
}
