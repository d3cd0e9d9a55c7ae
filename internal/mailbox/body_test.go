package mailbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singlePartMsg = "From: pwsupport@unionsd.org\r\n" +
	"To: parent@example.com\r\n" +
	"Subject: Progress Report\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Student : Jordan Lee\r\n" +
	"Course : Algebra I\r\n"

const multipartMsg = "From: pwsupport@unionsd.org\r\n" +
	"To: parent@example.com\r\n" +
	"Subject: Progress Report\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=\"b1\"\r\n" +
	"\r\n" +
	"--b1\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>ignored</p>\r\n" +
	"--b1\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Student : Jordan Lee\r\n" +
	"--b1--\r\n"

const htmlOnlyMsg = "From: pwsupport@unionsd.org\r\n" +
	"Subject: Progress Report\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>no plain part</p>\r\n"

func TestPlainTextSinglePart(t *testing.T) {
	body, err := PlainText(strings.NewReader(singlePartMsg))
	require.NoError(t, err)

	// CRLF is normalized so the line parser sees plain \n.
	assert.Equal(t, "Student : Jordan Lee\nCourse : Algebra I\n", body)
}

func TestPlainTextMultipart(t *testing.T) {
	body, err := PlainText(strings.NewReader(multipartMsg))
	require.NoError(t, err)
	assert.Contains(t, body, "Student : Jordan Lee")
	assert.NotContains(t, body, "ignored")
}

func TestPlainTextNoPlainPart(t *testing.T) {
	body, err := PlainText(strings.NewReader(htmlOnlyMsg))
	require.NoError(t, err)
	assert.Equal(t, "", body)
}

func TestPlainTextGarbage(t *testing.T) {
	_, err := PlainText(strings.NewReader("not an rfc822 message"))
	require.Error(t, err)
}
