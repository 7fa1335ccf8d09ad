package mapi

import "github.com/google/uuid"

// TagInfo describes a standard property: symbolic atom plus base type.
type TagInfo struct {
	Atom string
	Type uint16
}

// Standard PS_MAPI property codes (MS-OXPROPS subset used by the
// message and folder surfaces).
var tagRegistry = map[uint32]TagInfo{
	0x0017: {"importance", PT_LONG},
	0x001A: {"message_class", PT_UNICODE},
	0x0036: {"sensitivity", PT_LONG},
	0x0037: {"subject", PT_UNICODE},
	0x0039: {"client_submit_time", PT_SYSTIME},
	0x003D: {"subject_prefix", PT_UNICODE},
	0x007D: {"transport_message_headers", PT_UNICODE},
	0x0C15: {"recipient_type", PT_LONG},
	0x0C1A: {"sender_name", PT_UNICODE},
	0x0C1E: {"sender_addrtype", PT_UNICODE},
	0x0C1F: {"sender_email_address", PT_UNICODE},
	0x0E02: {"display_bcc", PT_UNICODE},
	0x0E03: {"display_cc", PT_UNICODE},
	0x0E04: {"display_to", PT_UNICODE},
	0x0E06: {"message_delivery_time", PT_SYSTIME},
	0x0E07: {"message_flags", PT_LONG},
	0x0E1D: {"normalized_subject", PT_UNICODE},
	0x1000: {"body", PT_UNICODE},
	0x1009: {"rtf_compressed", PT_BINARY},
	0x1013: {"body_html", PT_BINARY},
	0x1035: {"internet_message_id", PT_UNICODE},
	0x1039: {"internet_references", PT_UNICODE},
	0x1042: {"in_reply_to_id", PT_UNICODE},
	0x3001: {"display_name", PT_UNICODE},
	0x3002: {"addrtype", PT_UNICODE},
	0x3003: {"email_address", PT_UNICODE},
	0x3007: {"creation_time", PT_SYSTIME},
	0x3008: {"last_modification_time", PT_SYSTIME},
	0x3602: {"content_count", PT_LONG},
	0x3603: {"content_unread", PT_LONG},
	0x360A: {"subfolders", PT_BOOLEAN},
	0x3701: {"attach_data", PT_BINARY},
	0x3703: {"attach_extension", PT_UNICODE},
	0x3704: {"attach_filename", PT_UNICODE},
	0x3705: {"attach_method", PT_LONG},
	0x3707: {"attach_long_filename", PT_UNICODE},
	0x370B: {"rendering_position", PT_LONG},
	0x370E: {"attach_mime_tag", PT_UNICODE},
	0x3712: {"attach_content_id", PT_UNICODE},
	0x3713: {"attach_content_location", PT_UNICODE},
	0x3716: {"attach_content_disposition", PT_UNICODE},
	0x39FE: {"smtp_address", PT_UNICODE},
	0x3A00: {"account", PT_UNICODE},
	0x3A20: {"transmittable_display_name", PT_UNICODE},
	0x3FDE: {"internet_cpid", PT_LONG},
	0x3FFD: {"message_codepage", PT_LONG},
	0x403E: {"org_email_addr", PT_UNICODE},
	0x5D01: {"sender_smtp_address", PT_UNICODE},
	0x5FF6: {"recipient_display_name", PT_UNICODE},
}

var atomToCode map[string]uint32

type namedRegKey struct {
	code uint32
	guid uuid.UUID
}

// Named properties with fixed ids inside their property sets.
var namedRegistry = map[namedRegKey]string{
	{0x8502, PSETIDCommon}: "reminder_time",
	{0x8503, PSETIDCommon}: "reminder_set",
	{0x8506, PSETIDCommon}: "private",
	{0x8516, PSETIDCommon}: "common_start",
	{0x8517, PSETIDCommon}: "common_end",
	{0x8530, PSETIDCommon}: "flag_request",

	{0x8205, PSETIDAppointment}: "busy_status",
	{0x8208, PSETIDAppointment}: "location",
	{0x820D, PSETIDAppointment}: "appt_start_whole",
	{0x820E, PSETIDAppointment}: "appt_end_whole",
	{0x8213, PSETIDAppointment}: "appt_duration",
	{0x8223, PSETIDAppointment}: "recurring",

	{0x8101, PSETIDTask}: "task_status",
	{0x8102, PSETIDTask}: "percent_complete",
	{0x8104, PSETIDTask}: "task_start_date",
	{0x8105, PSETIDTask}: "task_due_date",
	{0x811C, PSETIDTask}: "task_complete",

	{0x8005, PSETIDAddress}: "file_under",
	{0x801A, PSETIDAddress}: "home_address",
	{0x801B, PSETIDAddress}: "business_address",
	{0x8082, PSETIDAddress}: "email1_addr_type",
	{0x8083, PSETIDAddress}: "email1_email_address",
	{0x8093, PSETIDAddress}: "email2_email_address",
	{0x80A3, PSETIDAddress}: "email3_email_address",

	{0x8700, PSETIDLog}: "log_type",
	{0x8706, PSETIDLog}: "log_start",
	{0x8707, PSETIDLog}: "log_duration",
	{0x8708, PSETIDLog}: "log_end",
}

type namedStrKey struct {
	name string
	guid uuid.UUID
}

// Named properties stored under a string name rather than a numeric
// id. PS_INTERNET_HEADERS keeps transport headers under their wire
// names.
var namedStrRegistry = map[namedStrKey]string{
	{"accept-language", PSInternetHeaders}: "accept_language",
	{"content-class", PSInternetHeaders}:   "content_class",
	{"x-mailer", PSInternetHeaders}:        "x_mailer",
	{"x-message-flag", PSInternetHeaders}:  "x_message_flag",
	{"x-unsent", PSInternetHeaders}:        "x_unsent",
}

var namedAtomToKey map[string]PropKey

func init() {
	atomToCode = make(map[string]uint32, len(tagRegistry))
	for code, info := range tagRegistry {
		atomToCode[info.Atom] = code
	}

	namedAtomToKey = make(map[string]PropKey, len(namedRegistry)+len(namedStrRegistry))
	for key, atom := range namedRegistry {
		namedAtomToKey[atom] = NumericKey(key.code, key.guid)
	}
	for key, atom := range namedStrRegistry {
		namedAtomToKey[atom] = NamedKey(key.name, key.guid)
	}
}

// Tag returns the registry entry for a standard property code.
func Tag(code uint32) (TagInfo, bool) {
	info, ok := tagRegistry[code]
	return info, ok
}

// CodeForAtom resolves a symbolic atom to its standard property code.
func CodeForAtom(atom string) (uint32, bool) {
	code, ok := atomToCode[atom]
	return code, ok
}

// NamedAtom resolves a (code, guid) pair to its named-property atom.
func NamedAtom(code uint32, guid uuid.UUID) (string, bool) {
	atom, ok := namedRegistry[namedRegKey{code, guid}]
	return atom, ok
}

// NamedAtomForName resolves a (string name, guid) pair to its atom.
func NamedAtomForName(name string, guid uuid.UUID) (string, bool) {
	atom, ok := namedStrRegistry[namedStrKey{name, guid}]
	return atom, ok
}

// KeyForNamedAtom resolves a named-property atom to its exact key.
func KeyForNamedAtom(atom string) (PropKey, bool) {
	key, ok := namedAtomToKey[atom]
	return key, ok
}
