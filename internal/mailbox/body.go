package mailbox

import (
	"io"
	"strings"

	"github.com/emersion/go-message/mail"

	_ "github.com/emersion/go-message/charset"
)

// PlainText extracts the first text/plain part of a raw RFC 822
// message. Single-part and multipart messages are both handled; a
// message with no text/plain part yields "". Line endings are
// normalized to \n so the line-oriented parser sees clean input.
func PlainText(r io.Reader) (string, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return "", err
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", err
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil || contentType != "text/plain" {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			return "", err
		}
		return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
	}
}
