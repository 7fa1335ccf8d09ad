package cfb

import "errors"

var (
	ErrorInvalidCFB = errors.New("invalid cfb file")

	ErrInvalidMagic       = errors.New("invalid CFB magic number")
	ErrInvalidByteOrder   = errors.New("invalid CFB byte order mark")
	ErrUnsupportedVersion = errors.New("unsupported CFB version")
	ErrInvalidSectorShift = errors.New("invalid CFB sector shift")
	ErrInvalidMiniCutoff  = errors.New("invalid CFB mini stream cutoff")
	ErrTooShort           = errors.New("CFB data too short")
)
