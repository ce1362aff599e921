// This file implements FIFO eviction.

package eviction

import "container/list"

type fifo struct {
	// order holds keys oldest first.
	order *list.List

	// index maps a key to its element in order so Remove is O(1).
	index map[string]*list.Element
}

func newFIFO() *fifo {
	return &fifo{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

// OnPut moves k to the back of the queue. A replace resets its insertion
// time, so it becomes the youngest entry.
func (f *fifo) OnPut(k string) {
	if el, ok := f.index[k]; ok {
		f.order.MoveToBack(el)
		return
	}
	f.index[k] = f.order.PushBack(k)
}

// Evict pops the oldest key.
func (f *fifo) Evict() string {
	el := f.order.Front()
	if el == nil {
		return ""
	}
	k := f.order.Remove(el).(string)
	delete(f.index, k)
	return k
}

func (f *fifo) Remove(k string) {
	el, ok := f.index[k]
	if !ok {
		return
	}
	f.order.Remove(el)
	delete(f.index, k)
}

func (f *fifo) Len() int {
	return f.order.Len()
}
