package render

// Renderer writes the human-readable form of a command result
type Renderer[T any] interface {
	Render(result T) error
}
