package design

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/kasuganosora/designstore/pkg/utils"
)

// contentHash returns a stable xxhash digest over the snapshot's type,
// structure and attributes. It is diagnostic only — never a substitute for
// SnapshotID identity — useful for spotting two snapshots that happen to
// carry identical content after independent mutations.
func (s *ObjectSnapshot) contentHash() uint64 {
	var b strings.Builder
	b.WriteString(s.TypeName)
	b.WriteByte('\x00')
	b.WriteString(s.Structure.Kind().String())
	b.WriteByte('\x00')
	if origin, target, ok := s.Structure.Endpoints(); ok {
		b.WriteString(formatID(ID(origin)))
		b.WriteByte(',')
		b.WriteString(formatID(ID(target)))
	}
	if owner, items, ok := s.Structure.OwnerAndItems(); ok {
		b.WriteString(formatID(ID(owner)))
		for _, it := range items {
			b.WriteByte(',')
			b.WriteString(formatID(ID(it)))
		}
	}
	b.WriteByte('\x00')

	for _, name := range utils.SortedStringKeys(s.Attributes) {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(s.Attributes[name].String())
		b.WriteByte(';')
	}

	return xxhash.Sum64String(b.String())
}

// ContentHash returns the digest as a hex string for logging/diagnostics.
func (s *ObjectSnapshot) ContentHash() string {
	return strconv.FormatUint(s.contentHash(), 16)
}

// ContentHash returns an xxhash digest over every snapshot in the frame, in
// the frame's stored order. Two frames with the same sequence of snapshot
// content hashes are content-identical even if their frame_id and
// snapshot_ids differ — e.g. deriving a frame and accepting it with no
// mutations produces a semantically equal frame under a fresh frame_id.
func (f *StableFrame) ContentHash() string {
	h := xxhash.New()
	for _, snap := range f.snapshots {
		_, _ = h.WriteString(strconv.FormatUint(snap.contentHash(), 16))
		_, _ = h.WriteString(";")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
