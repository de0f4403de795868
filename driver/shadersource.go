package driver

import "sync"

// ShaderSource is the backing store the core hands generated shader
// library text to, keyed by library name — the same keys gbuffer's
// GenerateShaderLibraries and the writer's output use. A real driver
// consumes these to build shader modules, which is out of this core's
// scope; ShaderSource only holds the text and hands it back out.
type ShaderSource struct {
	mu   sync.RWMutex
	libs map[string]string
}

// NewShaderSource creates an empty backing store.
func NewShaderSource() *ShaderSource {
	return &ShaderSource{libs: make(map[string]string)}
}

// Set stores source text under name, overwriting any existing entry.
func (s *ShaderSource) Set(name, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.libs[name] = source
}

// SetAll merges every entry of libs into the store.
func (s *ShaderSource) SetAll(libs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, src := range libs {
		s.libs[name] = src
	}
}

// Get returns the source stored under name, if any.
func (s *ShaderSource) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.libs[name]
	return src, ok
}

// Names returns every library name currently stored, in no particular
// order.
func (s *ShaderSource) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.libs))
	for name := range s.libs {
		names = append(names, name)
	}
	return names
}
