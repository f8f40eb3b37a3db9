package main

import "sync"

type Config struct {
	AiDepth          int  `json:"ai_depth" validate:"min=1,max=16"`
	AiLogSearchStats bool `json:"ai_log_search_stats"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		// 4 plies keeps a full-width search well under interactive latency
		// on an 8x8 board.
		AiDepth:          4,
		AiLogSearchStats: false,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
