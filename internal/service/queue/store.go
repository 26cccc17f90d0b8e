package queue

import (
	"sync"
)

// PositionNotQueued position_of 查询不到时的哨兵值。
const PositionNotQueued = -1

// Store 单轮次先进先出等待队列。同一轮次的变更互斥，不同轮次互不影响。
// 默认实现在进程内存中，多实例部署时可替换为共享存储实现。
type Store interface {
	// Enqueue 入队，已在队列中时为幂等no-op。返回是否真正入队。
	Enqueue(roundID string, userID string) bool
	// PositionOf 返回从0开始的位置，不在队列中返回 PositionNotQueued。
	PositionOf(roundID string, userID string) int
	// PopFront 取出队首，队列为空时ok为false。
	PopFront(roundID string) (userID string, ok bool)
	// Remove 按用户移除，不在队列中时no-op。
	Remove(roundID string, userID string)
	// Length 当前队列长度。
	Length(roundID string) int
}

type roundQueue struct {
	mu      sync.Mutex
	entries []string
}

// MemoryStore 进程内队列存储，按轮次懒创建，进程生命周期内常驻。
type MemoryStore struct {
	mu     sync.Mutex
	rounds map[string]*roundQueue
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rounds: make(map[string]*roundQueue),
	}
}

func (s *MemoryStore) round(roundID string) *roundQueue {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.rounds[roundID]
	if !ok {
		q = &roundQueue{}
		s.rounds[roundID] = q
	}
	return q
}

func (s *MemoryStore) Enqueue(roundID string, userID string) bool {
	q := s.round(roundID)
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, entry := range q.entries {
		if entry == userID {
			return false
		}
	}
	q.entries = append(q.entries, userID)
	return true
}

func (s *MemoryStore) PositionOf(roundID string, userID string) int {
	q := s.round(roundID)
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, entry := range q.entries {
		if entry == userID {
			return i
		}
	}
	return PositionNotQueued
}

func (s *MemoryStore) PopFront(roundID string) (string, bool) {
	q := s.round(roundID)
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return "", false
	}
	userID := q.entries[0]
	q.entries = q.entries[1:]
	return userID, true
}

func (s *MemoryStore) Remove(roundID string, userID string) {
	q := s.round(roundID)
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, entry := range q.entries {
		if entry == userID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

func (s *MemoryStore) Length(roundID string) int {
	q := s.round(roundID)
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
