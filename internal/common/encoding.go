package common

import (
	"encoding/binary"
	"io"
)

func WriteUint8(w io.Writer, v uint8) (int, error) {
	return w.Write([]byte{v})
}

func ReadUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func WriteUint64(w io.Writer, v uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.Write(buf[:])
}

func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteUvarint writes v as an unsigned varint.
func WriteUvarint(w io.Writer, v uint64) (int, error) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return w.Write(buf[:n])
}

// ReadUvarint reads an unsigned varint one byte at a time, so r is never
// read past the end of the value.
func ReadUvarint(r io.Reader) (uint64, error) {
	return binary.ReadUvarint(byteReader{r})
}

func WriteBytes(w io.Writer, data []byte) (int, error) {
	return w.Write(data)
}

func ReadBytes(r io.Reader, length uint64) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// byteReader adapts io.Reader to io.ByteReader for binary.ReadUvarint
type byteReader struct {
	io.Reader
}

func (br byteReader) ReadByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(br.Reader, b[:])
	return b[0], err
}
