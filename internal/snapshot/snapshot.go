// Package snapshot stores named cell sets in a zstd compressed file.
//
// Format (before compression):
//
//	[4 bytes: "CSET"][1 byte: version]
//	[uvarint: record count]
//	record: [uvarint: name length][name][16 bytes: word0, word1]
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"cellset/internal/cellset"
	"cellset/internal/common"
)

const (
	Version    = 1
	maxNameLen = 1 << 10
)

var magic = []byte("CSET")

var (
	ErrBadMagic           = errors.New("snapshot: bad magic")
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	ErrNameTooLong        = errors.New("snapshot: name too long")
)

// Named is a cell set with a label.
type Named struct {
	Name string
	Set  cellset.Words
}

// Write encodes sets to w.
func Write(w io.Writer, sets []Named) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := writeRecords(enc, sets); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writeRecords(w io.Writer, sets []Named) error {
	if _, err := common.WriteBytes(w, magic); err != nil {
		return err
	}
	if _, err := common.WriteUint8(w, Version); err != nil {
		return err
	}
	if _, err := common.WriteUvarint(w, uint64(len(sets))); err != nil {
		return err
	}
	for i := range sets {
		name := sets[i].Name
		if len(name) > maxNameLen {
			return fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(name))
		}
		if _, err := common.WriteUvarint(w, uint64(len(name))); err != nil {
			return err
		}
		if _, err := common.WriteBytes(w, []byte(name)); err != nil {
			return err
		}
		if _, err := cellset.WriteWords(w, &sets[i].Set); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) ([]Named, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	hdr, err := common.ReadBytes(dec, uint64(len(magic)))
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !bytes.Equal(hdr, magic) {
		return nil, ErrBadMagic
	}
	version, err := common.ReadUint8(dec)
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	count, err := common.ReadUvarint(dec)
	if err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}

	sets := make([]Named, 0, min(count, 1024))
	for i := uint64(0); i < count; i++ {
		nameLen, err := common.ReadUvarint(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if nameLen > maxNameLen {
			return nil, fmt.Errorf("record %d: %w: %d bytes", i, ErrNameTooLong, nameLen)
		}
		name, err := common.ReadBytes(dec, nameLen)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		set, err := cellset.ReadWords(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, name, err)
		}
		sets = append(sets, Named{Name: string(name), Set: set})
	}
	return sets, nil
}

// Save writes sets to the file at path, replacing it.
func Save(path string, sets []Named) error {
	start := time.Now()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, sets); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	common.LogDuration(start, "saved %d sets to %s", len(sets), path)
	return nil
}

// Load reads the snapshot at path.
func Load(path string) ([]Named, error) {
	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sets, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	common.LogDuration(start, "loaded %d sets from %s", len(sets), path)
	return sets, nil
}
