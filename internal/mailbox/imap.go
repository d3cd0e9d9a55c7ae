// Package mailbox retrieves progress-report message bodies over IMAP.
// It is the retrieval collaborator: it supplies raw plaintext bodies in
// mailbox order and knows nothing about grades.
package mailbox

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Client fetches message bodies from one IMAP mailbox.
type Client struct {
	Host     string // host:port, TLS
	Address  string
	Password string
	Sender   string // From filter
	Mailbox  string // preferred mailbox; falls back to INBOX
	DaysBack int
	Logger   *slog.Logger
}

// FetchBodies logs in, searches for messages from the configured sender
// within the lookback window, and returns their plain-text bodies.
// Messages without a text/plain part are skipped. Any connection or
// protocol error is fatal for the run.
func (c *Client) FetchBodies() ([]string, error) {
	conn, err := client.DialTLS(c.Host, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.Host, err)
	}
	defer conn.Logout()

	if err := conn.Login(c.Address, c.Password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if _, err := conn.Select(c.Mailbox, true); err != nil {
		if _, err := conn.Select("INBOX", true); err != nil {
			return nil, fmt.Errorf("select INBOX: %w", err)
		}
		c.Logger.Info("selected mailbox INBOX (preferred unavailable)", "preferred", c.Mailbox)
	} else {
		c.Logger.Info("selected mailbox", "mailbox", c.Mailbox)
	}

	days := c.DaysBack
	if days <= 0 {
		days = 7
	}
	criteria := imap.NewSearchCriteria()
	criteria.Since = time.Now().UTC().AddDate(0, 0, -days)
	criteria.Header.Add("From", c.Sender)

	ids, err := conn.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	c.Logger.Info("matched messages", "count", len(ids), "sender", c.Sender, "days_back", days)
	if len(ids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, 16)
	done := make(chan error, 1)
	go func() {
		done <- conn.Fetch(seqset, items, messages)
	}()

	var bodies []string
	for msg := range messages {
		r := msg.GetBody(section)
		if r == nil {
			continue
		}
		body, err := PlainText(r)
		if err != nil {
			c.Logger.Warn("extract body", "error", err)
			continue
		}
		if body == "" {
			continue
		}
		bodies = append(bodies, body)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return bodies, nil
}
