// Package msg assembles Outlook item files from their compound-file
// storage layout: one property set per storage, recipient and
// attachment sub-storages, and the named-property map under root.
package msg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asalih/go-outlook/cfb"
	"github.com/asalih/go-outlook/mapi"
	"github.com/asalih/go-outlook/rtf"
)

const (
	ATTACH_STORAGE_PREFIX = "__attach_version1.0_"
	RECIP_STORAGE_PREFIX  = "__recip_version1.0_"
	EMBEDDED_MSG_STREAM   = "__substg1.0_3701000D"

	// pr_attach_method value marking an embedded item.
	ATTACH_METHOD_EMBEDDED = 5
)

// RecipientType mirrors pr_recipient_type.
type RecipientType int

const (
	RecipientOrig RecipientType = 0
	RecipientTo   RecipientType = 1
	RecipientCc   RecipientType = 2
	RecipientBcc  RecipientType = 3
)

func (r RecipientType) String() string {
	switch r {
	case RecipientOrig:
		return "orig"
	case RecipientCc:
		return "cc"
	case RecipientBcc:
		return "bcc"
	default:
		return "to"
	}
}

// Message is one assembled item: its properties, recipients,
// attachments, and every warning collected along the way.
type Message struct {
	Properties  *mapi.PropertySet
	Recipients  []*Recipient
	Attachments []*Attachment
	Warnings    []mapi.Warning

	nameid NameidMap
}

type Recipient struct {
	Name       string
	Email      string
	Type       RecipientType
	Properties *mapi.PropertySet
}

type Attachment struct {
	Filename   string
	Data       []byte
	MimeType   string
	Embedded   *Message
	Properties *mapi.PropertySet
}

// Open assembles a message from compound-file bytes.
func Open(data []byte, validation cfb.Validation) (*Message, error) {
	cf, err := cfb.Open(data, validation)
	if err != nil {
		return nil, fmt.Errorf("open msg container: %w", err)
	}
	return assemble(cf, cf.Directory.RootDirEntry(), PROPERTIES_PREFIX_ROOT)
}

// assemble builds a Message rooted at one storage. Embedded items
// recurse through here with the root prefix.
func assemble(cf *cfb.CompoundFile, root *cfb.DirEntry, prefix int) (*Message, error) {
	m := &Message{}

	nameid, err := ParseNameid(cf, root)
	if err != nil {
		m.Warnings = append(m.Warnings, mapi.NewWarning(
			mapi.WarnNameidParseFailed, mapi.SeverityWarn,
			fmt.Sprintf("named properties unavailable: %v", err),
			NAMEID_STORAGE))
		nameid = make(NameidMap)
	}
	m.nameid = nameid

	m.Properties = buildPropertySet(cf, root, nameid, prefix, &m.Warnings)

	for _, child := range childStorages(cf, root, ATTACH_STORAGE_PREFIX) {
		att, err := parseAttachment(cf, child, nameid, &m.Warnings)
		if err != nil {
			m.Warnings = append(m.Warnings, mapi.NewWarning(
				mapi.WarnAttachmentSkipped, mapi.SeverityWarn,
				fmt.Sprintf("attachment unusable: %v", err),
				child.Name))
			continue
		}
		m.Attachments = append(m.Attachments, att)
	}

	for _, child := range childStorages(cf, root, RECIP_STORAGE_PREFIX) {
		set := buildPropertySet(cf, child, nameid, PROPERTIES_PREFIX_SUB, &m.Warnings)
		m.Recipients = append(m.Recipients, newRecipient(set))
	}

	return m, nil
}

// childStorages returns the storages under parent whose name carries
// the given prefix, ordered by dirent name.
func childStorages(cf *cfb.CompoundFile, parent *cfb.DirEntry, prefix string) []*cfb.DirEntry {
	var out []*cfb.DirEntry
	for _, child := range cf.Directory.Children(parent) {
		if child.ObjType != cfb.Storage {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(child.Name), prefix) {
			continue
		}
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func parseAttachment(cf *cfb.CompoundFile, storage *cfb.DirEntry, nameid NameidMap, warnings *[]mapi.Warning) (*Attachment, error) {
	set := buildPropertySet(cf, storage, nameid, PROPERTIES_PREFIX_SUB, warnings)

	att := &Attachment{Properties: set}
	att.Filename = attachmentFilename(set)
	att.Data, _ = set.GetBytes("attach_data")
	att.MimeType, _ = set.GetString("attach_mime_tag")

	if method, ok := set.GetInt("attach_method"); ok && method == ATTACH_METHOD_EMBEDDED {
		if sub := cf.Directory.FindChild(storage, EMBEDDED_MSG_STREAM); sub != nil {
			embedded, err := assemble(cf, sub, PROPERTIES_PREFIX_ROOT)
			if err != nil {
				return nil, err
			}
			att.Embedded = embedded
			*warnings = append(*warnings, embedded.Warnings...)
			embedded.Warnings = nil
		}
	}
	return att, nil
}

func attachmentFilename(set *mapi.PropertySet) string {
	if name, ok := set.GetString("attach_long_filename"); ok && name != "" {
		return name
	}
	if name, ok := set.GetString("attach_filename"); ok && name != "" {
		return name
	}
	return "attachment"
}

func newRecipient(set *mapi.PropertySet) *Recipient {
	r := &Recipient{Type: RecipientTo, Properties: set}

	for _, atom := range []string{"transmittable_display_name", "display_name", "recipient_display_name"} {
		if name, ok := set.GetString(atom); ok && name != "" {
			r.Name = name
			break
		}
	}
	for _, atom := range []string{"smtp_address", "org_email_addr", "email_address"} {
		if email, ok := set.GetString(atom); ok && email != "" {
			r.Email = email
			break
		}
	}
	if t, ok := set.GetInt("recipient_type"); ok {
		switch RecipientType(t) {
		case RecipientOrig, RecipientTo, RecipientCc, RecipientBcc:
			r.Type = RecipientType(t)
		}
	}
	return r
}

// Subject returns pr_subject, empty when absent.
func (m *Message) Subject() string {
	s, _ := m.Properties.GetString("subject")
	return s
}

// Body returns the plain-text body, empty when absent.
func (m *Message) Body() string {
	s, _ := m.Properties.GetString("body")
	return s
}

// BodyHTML returns the HTML body bytes, nil when absent.
func (m *Message) BodyHTML() []byte {
	b, _ := m.Properties.GetBytes("body_html")
	return b
}

// BodyRTF decompresses pr_rtf_compressed. Absent property yields
// (nil, nil); damaged payload yields the decompressor's error.
func (m *Message) BodyRTF() ([]byte, error) {
	raw, ok := m.Properties.GetBytes("rtf_compressed")
	if !ok {
		return nil, nil
	}
	return rtf.Decompress(raw)
}

// MessageClass returns pr_message_class, empty when absent.
func (m *Message) MessageClass() string {
	s, _ := m.Properties.GetString("message_class")
	return s
}
