package eml

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/asalih/go-outlook/msg"
)

// FromMsg renders an assembled item as an RFC 2822 message with the
// plain body inline and every attachment as a MIME part.
func FromMsg(m *msg.Message) ([]byte, error) {
	var header mail.Header
	header.SetSubject(m.Subject())
	header.SetDate(messageDate(m))

	if from := senderAddress(m); from != nil {
		header.SetAddressList("From", []*mail.Address{from})
	}
	for _, field := range []struct {
		key  string
		kind msg.RecipientType
	}{
		{"To", msg.RecipientTo},
		{"Cc", msg.RecipientCc},
		{"Bcc", msg.RecipientBcc},
	} {
		if list := recipientAddresses(m, field.kind); len(list) > 0 {
			header.SetAddressList(field.key, list)
		}
	}
	if id, ok := m.Properties.GetString("internet_message_id"); ok && id != "" {
		header.Set("Message-Id", id)
	}

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, header)
	if err != nil {
		return nil, fmt.Errorf("eml writer: %w", err)
	}

	if err := writeBodies(mw, m); err != nil {
		return nil, err
	}
	for _, att := range m.Attachments {
		if err := writeAttachment(mw, att); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("eml writer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBodies(mw *mail.Writer, m *msg.Message) error {
	tw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("inline part: %w", err)
	}

	var th mail.InlineHeader
	th.Set("Content-Type", "text/plain; charset=utf-8")
	pw, err := tw.CreatePart(th)
	if err != nil {
		return fmt.Errorf("inline part: %w", err)
	}
	if _, err := io.WriteString(pw, m.Body()); err != nil {
		return fmt.Errorf("inline part: %w", err)
	}
	pw.Close()

	if html := m.BodyHTML(); len(html) > 0 {
		var hh mail.InlineHeader
		hh.Set("Content-Type", "text/html; charset=utf-8")
		hw, err := tw.CreatePart(hh)
		if err != nil {
			return fmt.Errorf("html part: %w", err)
		}
		if _, err := hw.Write(html); err != nil {
			return fmt.Errorf("html part: %w", err)
		}
		hw.Close()
	}

	return tw.Close()
}

func writeAttachment(mw *mail.Writer, att *msg.Attachment) error {
	var ah mail.AttachmentHeader
	if att.MimeType != "" {
		ah.Set("Content-Type", att.MimeType)
	}
	ah.SetFilename(att.Filename)

	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("attachment %q: %w", att.Filename, err)
	}
	if _, err := aw.Write(att.Data); err != nil {
		return fmt.Errorf("attachment %q: %w", att.Filename, err)
	}
	return aw.Close()
}

func messageDate(m *msg.Message) time.Time {
	for _, atom := range []string{"client_submit_time", "message_delivery_time", "creation_time"} {
		if v, ok := m.Properties.Get(atom); ok {
			if t, isTime := v.(time.Time); isTime && !t.IsZero() {
				return t
			}
		}
	}
	return time.Now()
}

func senderAddress(m *msg.Message) *mail.Address {
	name, _ := m.Properties.GetString("sender_name")
	var email string
	for _, atom := range []string{"sender_smtp_address", "sender_email_address"} {
		if v, ok := m.Properties.GetString(atom); ok && v != "" {
			email = v
			break
		}
	}
	if name == "" && email == "" {
		return nil
	}
	return &mail.Address{Name: name, Address: email}
}

func recipientAddresses(m *msg.Message, kind msg.RecipientType) []*mail.Address {
	var out []*mail.Address
	for _, r := range m.Recipients {
		if r.Type != kind {
			continue
		}
		if r.Name == "" && r.Email == "" {
			continue
		}
		out = append(out, &mail.Address{Name: r.Name, Address: r.Email})
	}
	return out
}
