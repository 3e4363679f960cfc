package keymutex

import "sync"

// KeyMutex набор мьютексов, адресуемых строковым ключом
// Используется для сериализации операций над одним ресурсом
// (например, запросы на один и тот же слот комнаты или от одного requester),
// при этом операции над разными ключами идут полностью параллельно
type KeyMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New создает новый KeyMutex
func New() *KeyMutex {
	return &KeyMutex{
		entries: make(map[string]*entry),
	}
}

// Lock захватывает мьютекс по ключу
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock освобождает мьютекс по ключу
// Запись удаляется из map, когда её больше никто не ждет
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// Len возвращает количество ключей, удерживаемых или ожидаемых прямо сейчас
func (k *KeyMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
