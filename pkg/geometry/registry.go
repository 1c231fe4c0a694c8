package geometry

// Registry owns every shape of a scene. Shapes are referenced elsewhere by
// the integer id assigned here; ids are sequential per registry, never reused,
// and unique only within their registry.
type Registry struct {
	shapes []Shape
	byID   map[int]int
	nextID int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[int]int)}
}

// Register takes ownership of a shape and returns its new id. A shape can
// belong to only one registry; registering it twice panics.
func (r *Registry) Register(s Shape) int {
	data := s.Data()
	if data.registered {
		panic("geometry: shape is already registered")
	}

	id := r.nextID
	r.nextID++

	data.id = id
	data.registered = true
	r.byID[id] = len(r.shapes)
	r.shapes = append(r.shapes, s)
	return id
}

// Get looks up a shape by id
func (r *Registry) Get(id int) (Shape, bool) {
	index, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.shapes[index], true
}

// Len returns the number of registered shapes
func (r *Registry) Len() int {
	return len(r.shapes)
}

// At returns the i-th shape in registration order
func (r *Registry) At(i int) Shape {
	return r.shapes[i]
}

// All returns the shapes in registration order. The slice is a copy.
func (r *Registry) All() []Shape {
	out := make([]Shape, len(r.shapes))
	copy(out, r.shapes)
	return out
}

// Each calls fn for every shape in registration order
func (r *Registry) Each(fn func(Shape)) {
	for _, s := range r.shapes {
		fn(s)
	}
}
