package memo

// WriteonlyMemo never reports a hit; it exists to measure the analyzer's
// performance overhead without memoization and to assert that the
// search would have written a consistent value for any key it revisits
// — i.e. that the same completion-subset hash always resolves to the
// same winning/losing verdict.
type WriteonlyMemo struct {
	data map[Key]uint8
}

// NewWriteonly returns an empty WriteonlyMemo.
func NewWriteonly() *WriteonlyMemo {
	return &WriteonlyMemo{data: make(map[Key]uint8)}
}

type writeonlyHandle struct {
	m   *WriteonlyMemo
	key Key
}

func (h writeonlyHandle) HasValue() bool { return false }

func (h writeonlyHandle) GetWinning() bool {
	panic("memo: GetWinning on WriteonlyMemo, which never reports a hit")
}

func (h writeonlyHandle) SetWinning(winning bool) {
	v := uint8(1)
	if winning {
		v = 2
	}
	if prev, ok := h.m.data[h.key]; ok && prev != v {
		panic("memo: WriteonlyMemo detected inconsistent value for the same key")
	}
	h.m.data[h.key] = v
}

func (m *WriteonlyMemo) Lookup(key Key) Handle { return writeonlyHandle{m: m, key: key} }
