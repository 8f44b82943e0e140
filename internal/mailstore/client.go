package mailstore

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"mail-digest/internal/models"
)

// StandardStore is the IMAP-backed Store implementation.
type StandardStore struct {
	client  *client.Client
	timeout time.Duration
}

// NewStandardStore creates a new StandardStore with a default timeout of 30 seconds for IMAP operations
func NewStandardStore() *StandardStore {
	return &StandardStore{
		timeout: 30 * time.Second,
	}
}

// Connect establishes a secure connection to the IMAP server using TLS. It returns an error if the connection fails.
func (s *StandardStore) Connect(server string) error {
	cl, err := client.DialTLS(server, nil)
	if err != nil {
		return fmt.Errorf("mail store connection error: %w", err)
	}
	s.client = cl
	return nil
}

// Login authenticates the user with the IMAP server using the provided username and password. It returns an error if authentication fails or if there is no active connection.
func (s *StandardStore) Login(user, password string) error {
	if s.client == nil {
		return fmt.Errorf("not connected")
	}
	return s.client.Login(user, password)
}

// ResolveFolder resolves a slash-delimited folder path to a mailbox handle.
// An empty path or "Inbox" names the store's default inbox; otherwise the
// first segment is a top-level mailbox and each following segment a child of
// the previous one, joined with the store's own hierarchy delimiter. Segment
// names are matched exactly as the store reports them.
func (s *StandardStore) ResolveFolder(path string) (Folder, error) {
	if s.client == nil {
		return Folder{}, fmt.Errorf("not connected")
	}

	// The default-folder alias is matched case-insensitively: IMAP already
	// treats INBOX that way, so "inbox" and "INBOX" name the same mailbox.
	if path == "" || strings.EqualFold(path, "Inbox") {
		return Folder{Name: "INBOX"}, nil
	}

	delim, err := s.hierarchyDelimiter()
	if err != nil {
		return Folder{}, err
	}

	names := segmentNames(path, delim)
	for i, name := range names {
		exists, err := s.hasMailbox(name)
		if err != nil {
			return Folder{}, err
		}
		if !exists {
			segment := strings.Split(path, "/")[i]
			return Folder{}, fmt.Errorf("%w: %q (segment %q)", ErrFolderNotFound, path, segment)
		}
	}

	return Folder{Name: names[len(names)-1]}, nil
}

// ListRecent returns up to max of the newest items in folder, newest first.
// The mailbox is opened read-only and bodies are fetched with a peek, so no
// message flags change.
func (s *StandardStore) ListRecent(folder Folder, max int) ([]models.MailItem, error) {
	if s.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	mbox, err := s.client.Select(folder.Name, true)
	if err != nil {
		return nil, fmt.Errorf("cannot open folder %q: %w", folder.Name, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	from := uint32(1)
	if max > 0 && mbox.Messages > uint32(max) {
		from = mbox.Messages - uint32(max) + 1
	}
	seqSet := new(imap.SeqSet)
	seqSet.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchEnvelope, imap.FetchInternalDate, imap.FetchUid}

	prevTimeout := s.client.Timeout
	s.client.Timeout = s.timeout
	defer func() { s.client.Timeout = prevTimeout }()

	messages := make(chan *imap.Message, 16)
	done := make(chan error, 1)

	go func() {
		done <- s.client.Fetch(seqSet, items, messages)
	}()

	var fetched []*imap.Message
	for msg := range messages {
		fetched = append(fetched, msg)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("error fetching recent messages: %w", err)
	}

	// Newest first. Internal dates are authoritative; sequence numbers break
	// ties and cover messages the server returned without one.
	sort.SliceStable(fetched, func(i, j int) bool {
		di, dj := fetched[i].InternalDate, fetched[j].InternalDate
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return fetched[i].SeqNum > fetched[j].SeqNum
	})

	mailItems := make([]models.MailItem, 0, len(fetched))
	for _, msg := range fetched {
		mailItems = append(mailItems, parseItem(msg, section))
	}
	return mailItems, nil
}

// Close logs out from the IMAP server and closes the connection. If there is no active connection, it simply returns nil.
func (s *StandardStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Logout()
}

// hierarchyDelimiter asks the server for its mailbox hierarchy delimiter via
// an empty LIST, falling back to "/" when the server reports none.
func (s *StandardStore) hierarchyDelimiter() (string, error) {
	ch := make(chan *imap.MailboxInfo, 1)
	done := make(chan error, 1)

	go func() {
		done <- s.client.List("", "", ch)
	}()

	delim := "/"
	for info := range ch {
		if info.Delimiter != "" {
			delim = info.Delimiter
		}
	}

	if err := <-done; err != nil {
		return "", fmt.Errorf("error listing mailbox hierarchy: %w", err)
	}
	return delim, nil
}

func (s *StandardStore) hasMailbox(name string) (bool, error) {
	ch := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- s.client.List("", name, ch)
	}()

	found := false
	for info := range ch {
		if info.Name == name {
			found = true
		}
	}

	if err := <-done; err != nil {
		return false, fmt.Errorf("error listing mailbox %q: %w", name, err)
	}
	return found, nil
}

// segmentNames expands a slash-delimited folder path into the progressively
// joined mailbox name for each segment, using the store's delimiter.
func segmentNames(path, delim string) []string {
	segments := strings.Split(path, "/")
	names := make([]string, 0, len(segments))
	name := ""
	for _, segment := range segments {
		if name == "" {
			name = segment
		} else {
			name = name + delim + segment
		}
		names = append(names, name)
	}
	return names
}
