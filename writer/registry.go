package writer

import "sync"

// Registry manages the available output writers, keyed by both name
// and file extension so callers can look one up either way (adapted
// from codec.Registry in the teacher, which dual-keyed by codec name
// and DICOM transfer-syntax UID).
type Registry struct {
	mu      sync.RWMutex
	writers map[string]Writer // key is either Name() or Ext()
}

var defaultRegistry = &Registry{
	writers: make(map[string]Writer),
}

// Register registers w in the default registry under both its name
// and its extension.
func Register(w Writer) {
	defaultRegistry.Register(w)
}

// Get retrieves a writer by name or extension from the default
// registry.
func Get(nameOrExt string) (Writer, error) {
	return defaultRegistry.Get(nameOrExt)
}

// List returns all distinct writers registered in the default
// registry.
func List() []Writer {
	return defaultRegistry.List()
}

// Register registers w under both its name and its extension.
func (r *Registry) Register(w Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writers[w.Name()] = w
	r.writers[w.Ext()] = w
}

// Get retrieves a writer by name or extension.
func (r *Registry) Get(nameOrExt string) (Writer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.writers[nameOrExt]
	if !ok {
		return nil, ErrWriterNotFound
	}
	return w, nil
}

// List returns all distinct writers registered (deduplicated across
// the name/extension keys).
func (r *Registry) List() []Writer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Writer]bool)
	out := make([]Writer, 0, len(r.writers))
	for _, w := range r.writers {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func init() {
	Register(CSV{})
	Register(Binary{})
}
