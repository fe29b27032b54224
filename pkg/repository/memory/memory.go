package memory

import (
	"github.com/secmon-lab/msnipe/pkg/domain/interfaces"
	"github.com/secmon-lab/msnipe/pkg/domain/model/config"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps all bot state in process memory. Nothing survives a restart.
type Memory struct {
	recent *recentRepository
	snipe  *snipeRepository
}

var _ interfaces.Repository = &Memory{}

type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity sets how many recent messages are kept per channel.
// Non-positive values are ignored.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

func New(opts ...Option) *Memory {
	o := options{capacity: config.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	return &Memory{
		recent: newRecentRepository(o.capacity),
		snipe:  newSnipeRepository(),
	}
}

func (m *Memory) Recent() interfaces.RecentMessageRepository {
	return m.recent
}

func (m *Memory) Snipe() interfaces.SnipeRepository {
	return m.snipe
}
