// Package eml reads and writes RFC 2822 mail files, bridging the
// compound-file item shape to plain internet mail.
package eml

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/textproto"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/asalih/go-outlook/mapi"
)

type Attachment struct {
	Filename string
	MimeType string
	Data     []byte
}

// Message is one parsed mail file. Headers keeps every raw header
// field, canonicalized keys, in addition to the convenience fields.
type Message struct {
	Subject     string
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Date        time.Time
	Headers     map[string][]string
	Body        string
	HTML        []byte
	Attachments []Attachment
	Warnings    []mapi.Warning
}

// Open parses mail bytes. Header or part damage degrades to a partial
// message plus warnings; only an empty input is a hard failure.
func Open(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("eml input is empty")
	}

	m := &Message{Headers: make(map[string][]string)}

	mr, err := mail.CreateReader(bytes.NewReader(data))
	if err != nil {
		m.Warnings = append(m.Warnings, mapi.NewWarning(
			mapi.WarnMalformedHeaderLine, mapi.SeverityWarn,
			fmt.Sprintf("header parse degraded: %v", err),
			"eml"))
		parseLenient(data, m)
		return m, nil
	}
	defer mr.Close()

	fillHeaders(m, mr)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			m.Warnings = append(m.Warnings, mapi.NewWarning(
				mapi.WarnNestedPart, mapi.SeverityWarn,
				fmt.Sprintf("part walk stopped: %v", err),
				"eml"))
			break
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				m.Warnings = append(m.Warnings, mapi.NewWarning(
					mapi.WarnNestedPart, mapi.SeverityWarn,
					fmt.Sprintf("inline part unreadable: %v", readErr),
					contentType))
				continue
			}
			switch {
			case strings.HasPrefix(contentType, "text/plain"):
				m.Body = string(body)
			case strings.HasPrefix(contentType, "text/html"):
				m.HTML = body
			}
		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()
			body, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				m.Warnings = append(m.Warnings, mapi.NewWarning(
					mapi.WarnNestedPart, mapi.SeverityWarn,
					fmt.Sprintf("attachment %q unreadable: %v", filename, readErr),
					contentType))
				continue
			}
			if filename == "" {
				filename = "attachment"
			}
			m.Attachments = append(m.Attachments, Attachment{
				Filename: filename,
				MimeType: contentType,
				Data:     body,
			})
		}
	}

	return m, nil
}

func fillHeaders(m *Message, mr *mail.Reader) {
	header := mr.Header

	fields := header.Fields()
	for fields.Next() {
		key := textproto.CanonicalMIMEHeaderKey(fields.Key())
		m.Headers[key] = append(m.Headers[key], fields.Value())
	}

	m.Subject, _ = header.Subject()
	m.Date, _ = header.Date()

	if from, err := header.AddressList("From"); err == nil && len(from) > 0 {
		m.From = from[0].String()
	}
	m.To = addressStrings(header, "To")
	m.Cc = addressStrings(header, "Cc")
	m.Bcc = addressStrings(header, "Bcc")

	if ct := header.Get("Content-Type"); ct != "" {
		mediaType, params, err := mime.ParseMediaType(ct)
		if err == nil && strings.HasPrefix(mediaType, "multipart/") && params["boundary"] == "" {
			m.Warnings = append(m.Warnings, mapi.NewWarning(
				mapi.WarnMultipartMissingBoundary, mapi.SeverityWarn,
				fmt.Sprintf("%v declared without a boundary", mediaType),
				"eml"))
		}
	}
}

func addressStrings(header mail.Header, key string) []string {
	list, err := header.AddressList(key)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, addr := range list {
		out = append(out, addr.String())
	}
	return out
}

// parseLenient is the fallback for inputs the strict reader rejects:
// split headers on the first blank line, keep well-formed lines, skip
// folded continuation lines, warn on the rest, and treat the remainder
// as a plain body.
func parseLenient(data []byte, m *Message) {
	head, body, found := bytes.Cut(data, []byte("\r\n\r\n"))
	if !found {
		head, body, found = bytes.Cut(data, []byte("\n\n"))
	}
	if !found {
		m.Body = string(data)
		return
	}

	for _, line := range strings.Split(string(head), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			m.Warnings = append(m.Warnings, mapi.NewWarning(
				mapi.WarnMalformedHeaderLine, mapi.SeverityWarn,
				fmt.Sprintf("line %q is not a header field", line),
				"eml"))
			continue
		}
		canonical := textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(key))
		m.Headers[canonical] = append(m.Headers[canonical], strings.TrimSpace(value))
	}

	if v, ok := m.Headers["Subject"]; ok && len(v) > 0 {
		m.Subject = v[0]
	}
	if v, ok := m.Headers["From"]; ok && len(v) > 0 {
		m.From = v[0]
	}
	m.Body = string(body)
}
