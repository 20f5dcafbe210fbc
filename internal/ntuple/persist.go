package ntuple

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"sort"
)

// ErrWeightsMismatch is returned by Load when a checkpoint's pattern count
// does not match the compiled-in catalogue (NumPatterns), which means it
// was written by a different version of the catalogue and cannot be
// interpreted against the current Patterns table.
var ErrWeightsMismatch = errors.New("ntuple: checkpoint pattern count does not match the compiled catalogue")

// fileMagic tags the checkpoint format so Load can fail fast on unrelated
// binary data instead of silently misreading it.
const fileMagic uint32 = 0x434e5443 // "CNTC"

// Save writes n's weights in a sparse binary format: a 4-byte magic tag
// and a 4-byte pattern count, then for each pattern a 4-byte entry count followed by that
// many (8-byte key, 4-byte float32 value) records in ascending key order.
// Only populated entries are written; everything else implicitly keeps
// defaultWeight on Load.
func (n *Network) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	n.mu.RLock()
	defer n.mu.RUnlock()

	if err := binary.Write(w, binary.LittleEndian, fileMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(NumPatterns)); err != nil {
		return err
	}

	for _, m := range n.weights {
		keys := make([]uint64, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		if err := binary.Write(w, binary.LittleEndian, uint32(len(keys))); err != nil {
			return err
		}
		for _, k := range keys {
			if err := binary.Write(w, binary.LittleEndian, k); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, m[k]); err != nil {
				return err
			}
		}
	}

	return w.Flush()
}

// Load reads a checkpoint written by Save into a fresh Network. It
// returns ErrWeightsMismatch if the file's pattern count does not match
// NumPatterns, and a plain I/O or format error otherwise.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != fileMagic {
		return nil, errors.New("ntuple: not a weights file")
	}

	var numPatterns uint32
	if err := binary.Read(r, binary.LittleEndian, &numPatterns); err != nil {
		return nil, err
	}
	if int(numPatterns) != NumPatterns {
		return nil, ErrWeightsMismatch
	}

	n := NewNetwork()
	for p := 0; p < NumPatterns; p++ {
		var count uint32
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, err
		}
		for i := uint32(0); i < count; i++ {
			var key uint64
			var val float32
			if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
				return nil, err
			}
			if err := binary.Read(r, binary.LittleEndian, &val); err != nil {
				if err == io.EOF {
					return nil, io.ErrUnexpectedEOF
				}
				return nil, err
			}
			n.weights[p][key] = val
		}
	}

	return n, nil
}
