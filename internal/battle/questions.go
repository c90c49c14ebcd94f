package battle

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/incode/internal/model"
	"github.com/verte-zerg/incode/internal/typing"
)

// Sampler draws battle questions with an unbiased shuffle.
type Sampler struct {
	rnd *rand.Rand
}

// NewSampler returns a Sampler seeded with the current time.
func NewSampler() *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSampler returns a Sampler with a fixed seed.
func NewSeededSampler(seed int64) *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(seed))}
}

// Pool builds one question per lesson base command and one per argument.
func Pool(lessons []model.Lesson) []model.Question {
	pool := make([]model.Question, 0, len(lessons))
	for _, lesson := range lessons {
		pool = append(pool, model.Question{Command: lesson.Command, Description: lesson.Title})
		for _, arg := range lesson.Arguments {
			pool = append(pool, model.Question{
				Command:     typing.ArgumentCommand(lesson.Command, arg.Flag),
				Description: arg.Description,
			})
		}
	}
	return pool
}

// Sample returns min(n, len(pool)) distinct questions in random order. The
// pool is not modified.
func (s *Sampler) Sample(pool []model.Question, n int) []model.Question {
	idx := s.SampleIndexes(len(pool), n)
	if len(idx) == 0 {
		return nil
	}
	out := make([]model.Question, len(idx))
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

// SampleIndexes draws min(n, size) distinct indexes in [0, size).
func (s *Sampler) SampleIndexes(size, n int) []int {
	if n > size {
		n = size
	}
	if n <= 0 {
		return nil
	}
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: only the first n slots are drawn.
	for i := 0; i < n; i++ {
		j := i + s.rnd.Intn(size-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:n]
}
