package pst

import (
	"fmt"
	"strings"

	"github.com/asalih/go-outlook/mapi"
)

// ItemKind classifies an item by its message class.
type ItemKind int

const (
	KindMessage ItemKind = iota
	KindFolder
	KindAppointment
	KindContact
	KindTask
	KindNote
	KindJournal
)

func (k ItemKind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindAppointment:
		return "appointment"
	case KindContact:
		return "contact"
	case KindTask:
		return "task"
	case KindNote:
		return "note"
	case KindJournal:
		return "journal"
	default:
		return "message"
	}
}

// Item is one materialized node: its descriptor, decoded properties,
// classification, and the warnings its property decode produced.
type Item struct {
	Descriptor *Descriptor
	Properties *mapi.PropertySet
	Kind       ItemKind
	Warnings   []mapi.Warning
}

func (i *Item) IsMessage() bool { return i.Kind != KindFolder }
func (i *Item) IsFolder() bool  { return i.Kind == KindFolder }

// DisplayName returns pr_display_name, empty when absent.
func (i *Item) DisplayName() string {
	s, _ := i.Properties.GetString("display_name")
	return s
}

// Subject returns pr_subject, empty when absent.
func (i *Item) Subject() string {
	s, _ := i.Properties.GetString("subject")
	return s
}

// LoadItem materializes one descriptor: main block via idx_id, sub
// blocks via the ID2 table, properties decoded per MAPI type.
func (p *PST) LoadItem(desc *Descriptor) (*Item, error) {
	raw, err := p.readIndexBlock(desc.IdxID)
	if err != nil {
		return nil, fmt.Errorf("descriptor 0x%X: %w", desc.ID, err)
	}
	block, err := parseBlock(raw)
	if err != nil {
		return nil, fmt.Errorf("descriptor 0x%X: %w", desc.ID, err)
	}

	id2 := p.id2MapFor(desc)
	var warnings []mapi.Warning
	set := decodeBlockProperties(block, p.resolverFor(id2), 0, &warnings)

	return &Item{
		Descriptor: desc,
		Properties: set,
		Kind:       classify(set),
		Warnings:   warnings,
	}, nil
}

// classify applies the message-class law. Items without a class are
// folders when they carry folder counters, messages otherwise.
func classify(set *mapi.PropertySet) ItemKind {
	if class, ok := set.GetString("message_class"); ok && class != "" {
		lower := strings.ToLower(class)
		switch {
		case strings.HasPrefix(lower, "ipm.note"), strings.HasPrefix(lower, "ipm.post"):
			return KindMessage
		case strings.HasPrefix(lower, "ipm.appointment"):
			return KindAppointment
		case strings.HasPrefix(lower, "ipm.contact"):
			return KindContact
		case strings.HasPrefix(lower, "ipm.task"):
			return KindTask
		case strings.HasPrefix(lower, "ipm.stickynote"):
			return KindNote
		case strings.HasPrefix(lower, "ipm.activity"):
			return KindJournal
		default:
			return KindMessage
		}
	}
	if _, ok := set.Get("content_count"); ok {
		return KindFolder
	}
	if _, ok := set.Get("subfolders"); ok {
		return KindFolder
	}
	return KindMessage
}
