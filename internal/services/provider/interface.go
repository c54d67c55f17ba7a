// File: internal/services/provider/interface.go
package provider

import "context"

// TextCompleter is the text-completion capability of an inference
// provider.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// VisionCompleter is the image-analysis capability. Image references
// are paths into the local upload store; the adapter loads and inlines
// them.
type VisionCompleter interface {
	CompleteVision(ctx context.Context, prompt string, imagePaths []string) (string, error)
}

// Logger is the logging surface used by adapter implementations.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
