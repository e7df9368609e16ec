package store

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/dogechain-lab/objectchain/types"
)

const defaultStripes = 1024

// stripedMutex maps digests onto a fixed table of mutexes. Several keys
// are always acquired in ascending stripe order so that two critical
// sections over overlapping keys cannot deadlock.
type stripedMutex struct {
	mutexes []sync.Mutex
}

func newStripedMutex(n int) *stripedMutex {
	if n <= 0 {
		n = defaultStripes
	}

	return &stripedMutex{mutexes: make([]sync.Mutex, n)}
}

func (s *stripedMutex) index(d types.Digest) int {
	return int(binary.BigEndian.Uint32(d[:4]) % uint32(len(s.mutexes)))
}

// lock acquires the stripes of every digest and returns the release func
func (s *stripedMutex) lock(digests ...types.Digest) func() {
	seen := make(map[int]struct{}, len(digests))
	indexes := make([]int, 0, len(digests))

	for _, d := range digests {
		idx := s.index(d)
		if _, ok := seen[idx]; ok {
			continue
		}

		seen[idx] = struct{}{}
		indexes = append(indexes, idx)
	}

	sort.Ints(indexes)

	for _, idx := range indexes {
		s.mutexes[idx].Lock()
	}

	return func() {
		for i := len(indexes) - 1; i >= 0; i-- {
			s.mutexes[indexes[i]].Unlock()
		}
	}
}

// refDigests maps refs onto the keys their lock slots are striped by
func refDigests(refs []types.ObjectRef) []types.Digest {
	digests := make([]types.Digest, len(refs))
	for i, ref := range refs {
		digests[i] = ref.Digest
	}

	return digests
}
