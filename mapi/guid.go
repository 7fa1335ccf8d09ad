package mapi

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Well-known MAPI property set GUIDs.
var (
	PSMapi             = uuid.MustParse("00020328-0000-0000-C000-000000000046")
	PSPublicStrings    = uuid.MustParse("00020329-0000-0000-C000-000000000046")
	PSInternetHeaders  = uuid.MustParse("00020386-0000-0000-C000-000000000046")
	PSETIDAppointment  = uuid.MustParse("00062002-0000-0000-C000-000000000046")
	PSETIDTask         = uuid.MustParse("00062003-0000-0000-C000-000000000046")
	PSETIDAddress      = uuid.MustParse("00062004-0000-0000-C000-000000000046")
	PSETIDCommon       = uuid.MustParse("00062008-0000-0000-C000-000000000046")
	PSETIDLog          = uuid.MustParse("0006200A-0000-0000-C000-000000000046")
	PSETIDMeeting      = uuid.MustParse("6ED8DA90-450B-101B-98DA-00AA003F1305")
)

// GUIDFromMixed reads a 16-byte on-disk GUID: the first three fields
// are little endian, the final eight bytes are stored as written.
func GUIDFromMixed(b []byte) (uuid.UUID, error) {
	if len(b) < 16 {
		return uuid.Nil, fmt.Errorf("guid needs 16 bytes, have %v", len(b))
	}
	var u [16]byte
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	copy(u[8:], b[8:16])
	return uuid.UUID(u), nil
}

// FormatGUID renders a GUID in the canonical braced upper-case form.
func FormatGUID(u uuid.UUID) string {
	return "{" + strings.ToUpper(u.String()) + "}"
}
