package memo

import "nonet/internal/counters"

const (
	lossyValueMask = 0xff
	lossyKeyMask   = ^uint64(lossyValueMask)
)

// LossyMemo is the fixed-capacity memo: size slots of 64 bits each,
// storing the top 56 bits of the key alongside an 8-bit value. Two keys
// that collide on the same slot silently overwrite each other;
// overwrites are counted via Counters.MemoCollisions, per spec.md §4.4
// and §7 ("hash collision in the memo ... counted but not otherwise
// surfaced").
type LossyMemo struct {
	data     []uint64
	mask     uint64 // size-1, size is a power of 2
	counters *counters.Counters
}

// DefaultLossySize is 2^26 slots (≈512MiB at 8 bytes/slot), the size
// spec.md §4.4 recommends.
const DefaultLossySize = 1 << 26

// NewLossy returns a LossyMemo with `size` slots (must be a power of 2).
// Collisions increment c.MemoCollisions; c may be nil to disable that
// bookkeeping.
func NewLossy(size uint64, c *counters.Counters) *LossyMemo {
	if size == 0 || size&(size-1) != 0 {
		panic("memo: LossyMemo size must be a power of 2")
	}
	return &LossyMemo{data: make([]uint64, size), mask: size - 1, counters: c}
}

type lossyHandle struct {
	m         *LossyMemo
	maskedKey uint64
	index     uint64
}

func (h lossyHandle) entry() uint64 { return h.m.data[h.index] }

func (h lossyHandle) HasValue() bool {
	e := h.entry()
	return e&lossyKeyMask == h.maskedKey && e&lossyValueMask != 0
}

func (h lossyHandle) GetWinning() bool {
	e := h.entry()
	v := e & lossyValueMask
	if v == 0 {
		panic("memo: GetWinning on unset key")
	}
	return v-1 != 0
}

func (h lossyHandle) SetWinning(winning bool) {
	e := h.entry()
	if e&lossyKeyMask != 0 && e&lossyKeyMask != h.maskedKey {
		if h.m.counters != nil {
			h.m.counters.MemoCollisions.Inc()
		}
	}
	v := uint64(1)
	if winning {
		v = 2
	}
	h.m.data[h.index] = h.maskedKey | v
}

func (m *LossyMemo) Lookup(key Key) Handle {
	return lossyHandle{m: m, maskedKey: key & lossyKeyMask, index: key & m.mask}
}
