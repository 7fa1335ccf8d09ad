package cfb

import "fmt"

// ReadStream returns the content of a stream entry. Streams smaller
// than the mini stream cutoff live in the mini stream; the root entry
// and anything at or above the cutoff read straight from the FAT.
func (c *CompoundFile) ReadStream(entry *DirEntry) ([]byte, error) {
	if entry == nil {
		return nil, fmt.Errorf("no such stream: %w", ErrorInvalidCFB)
	}

	if entry.StreamSize < uint64(MINI_STREAM_CUTOFF) && entry.ObjType != Root {
		return c.MiniAlloc.ReadMiniStream(entry.StartingSector, entry.StreamSize), nil
	}

	raw, err := c.Allocator.ReadStream(entry.StartingSector)
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) > entry.StreamSize {
		raw = raw[:entry.StreamSize]
	}
	return raw, nil
}

// OpenStream resolves a /-separated path from the root storage and
// returns the stream content.
func (c *CompoundFile) OpenStream(path string) ([]byte, error) {
	names := NameChainFromPath(path)

	entry := c.Directory.RootDirEntry()
	for _, name := range names {
		if name == "." {
			continue
		}
		entry = c.Directory.FindChild(entry, name)
		if entry == nil {
			return nil, fmt.Errorf("stream not found: %s", path)
		}
	}

	if entry.ObjType != Stream {
		return nil, fmt.Errorf("not a stream: %s", path)
	}

	return c.ReadStream(entry)
}
