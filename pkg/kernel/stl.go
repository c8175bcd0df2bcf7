package kernel

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// stlHeaderSize is the fixed binary STL header length.
const stlHeaderSize = 80

// WriteSTL writes the mesh as binary STL: an 80-byte header, a uint32
// triangle count, then 50 bytes per triangle (normal, three vertices, and
// a zero attribute word), all little-endian.
func WriteSTL(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "sapwood binary STL")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	nt := m.TriangleCount()
	if err := binary.Write(bw, binary.LittleEndian, uint32(nt)); err != nil {
		return err
	}

	for t := 0; t < nt; t++ {
		i0, i1, i2 := m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]

		// One normal per triangle; the per-vertex normals are flat-shaded
		// copies, so the first vertex's normal is the face normal.
		var rec [12]float32
		copy(rec[0:3], m.Normals[3*i0:3*i0+3])
		copy(rec[3:6], m.Vertices[3*i0:3*i0+3])
		copy(rec[6:9], m.Vertices[3*i1:3*i1+3])
		copy(rec[9:12], m.Vertices[3*i2:3*i2+3])
		if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing STL output: %w", err)
	}
	return nil
}
