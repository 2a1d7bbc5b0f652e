package cache

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key identifica um result set cacheado: kind + filtro serializado.
// Mesmo formato de chave do front original ("leads", "follow_ups/<id>"...).
type Key string

func LeadsKey() Key {
	return "leads"
}

func NotesKey(leadID string) Key {
	return Key("lead_notes/" + leadID)
}

func FollowUpsKey(leadID string) Key {
	if leadID == "" {
		return "follow_ups"
	}
	return Key("follow_ups/" + leadID)
}

// Loader é sempre um List de repositório; o cache nunca fala com a
// rede por conta própria.
type Loader func(ctx context.Context) (any, error)

type cacheEntry struct {
	value any
	stale bool
}

// QueryCache é o único estado mutável compartilhado do front: um
// espelho best-effort do que o data service devolveu por chave, com
// flag de staleness por chave. Vive do start ao exit do processo,
// nunca é persistido e nunca é autoritativo.
//
// Invalidate não evita dado velho de ser servido via Read: entrada
// stale continua servível até ser substituída, pra tela não piscar.
// O refetch acontece lazy, no próximo Fetch da chave.
type QueryCache struct {
	mu      sync.Mutex
	entries map[Key]*cacheEntry
	flight  singleflight.Group
}

func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries: make(map[Key]*cacheEntry),
	}
}

// Read devolve o valor cacheado (mesmo stale) sem tocar a rede.
func (c *QueryCache) Read(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Fetch devolve o valor cacheado se fresco; senão roda o loader, grava
// e limpa a staleness. Fetches concorrentes da mesma chave com load em
// voo não duplicam a chamada de rede: todos recebem o resultado do
// load único (singleflight).
func (c *QueryCache) Fetch(ctx context.Context, key Key, loader Loader) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale {
		c.mu.Unlock()
		hits.WithLabelValues(kindOf(key)).Inc()
		return e.value, nil
	}
	c.mu.Unlock()

	misses.WithLabelValues(kindOf(key)).Inc()

	value, err, shared := c.flight.Do(string(key), func() (any, error) {
		// Checa de novo: outro caller pode ter completado o load
		// entre o unlock acima e a entrada no singleflight.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && !e.stale {
			c.mu.Unlock()
			return e.value, nil
		}
		c.mu.Unlock()

		v, err := loader(ctx)
		if err != nil {
			// Load falhou: a entrada (stale ou ausente) fica como estava.
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &cacheEntry{value: v}
		c.mu.Unlock()
		return v, nil
	})
	if shared {
		coalesced.WithLabelValues(kindOf(key)).Inc()
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Invalidate marca como stale toda chave que o predicado aceitar.
// Não apaga nada e não dispara refetch nenhum.
func (c *QueryCache) Invalidate(pred func(Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if pred(key) {
			e.stale = true
		}
	}
}

// InvalidatePrefix cobre o caso comum: "follow_ups" invalida a lista
// geral e todas as listas por lead.
func (c *QueryCache) InvalidatePrefix(prefix string) {
	c.Invalidate(func(k Key) bool {
		return strings.HasPrefix(string(k), prefix)
	})
}

func kindOf(key Key) string {
	s := string(key)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i]
	}
	return s
}
