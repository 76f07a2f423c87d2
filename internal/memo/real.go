package memo

// RealMemo is the exact, growing memo backed by a plain Go map — the
// required default per spec.md §4.4. Go maps, like std::unordered_map,
// never invalidate existing entries on further inserts, but unlike
// std::unordered_map they don't expose a stable pointer to a value, so
// the handle re-resolves by key on every access instead of holding one.
type RealMemo struct {
	data map[Key]uint8 // 0=unknown, 1=losing, 2=winning
}

// NewReal returns an empty RealMemo.
func NewReal() *RealMemo {
	return &RealMemo{data: make(map[Key]uint8)}
}

type realHandle struct {
	m   *RealMemo
	key Key
}

func (h realHandle) HasValue() bool  { return h.m.data[h.key] != 0 }
func (h realHandle) GetWinning() bool {
	v := h.m.data[h.key]
	if v == 0 {
		panic("memo: GetWinning on unset key")
	}
	return v == 2
}
func (h realHandle) SetWinning(winning bool) {
	if winning {
		h.m.data[h.key] = 2
	} else {
		h.m.data[h.key] = 1
	}
}

func (m *RealMemo) Lookup(key Key) Handle { return realHandle{m: m, key: key} }

// Len reports the number of distinct keys recorded so far.
func (m *RealMemo) Len() int { return len(m.data) }
