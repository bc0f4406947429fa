package languageServices

import (
	"sync"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

// Session memoizes the cursor context of one document between requests. The
// context is recomputed only when the document version or the cursor
// position differs from the last computation.
type Session struct {
	mu           sync.Mutex
	valid        bool
	version      int
	position     casl2.TextPosition
	context      CursorContext
	computations int
}

func NewSession() *Session {
	return &Session{}
}

// CursorContext returns the memoized context for (version, position), calling
// compute when it is stale.
func (s *Session) CursorContext(version int, position casl2.TextPosition, compute func() CursorContext) CursorContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid && s.version == version && s.position == position {
		return s.context
	}

	s.context = compute()
	s.version = version
	s.position = position
	s.valid = true
	s.computations++
	return s.context
}

// Invalidate forgets the memoized context.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.mu.Unlock()
}

// Computations reports how many times the context was actually computed.
func (s *Session) Computations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computations
}
