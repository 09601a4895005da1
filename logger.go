// logger.go
package cellspacer

import (
	"io"

	"github.com/baditaflorin/go_cell_spacer/internal/adapters/logger"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// createDefaultLogger creates the diagnostics logger used by WithDiagnostics.
func createDefaultLogger(out io.Writer, jsonFormat bool) (ports.Logger, error) {
	return logger.NewLogger(logger.Options{
		Output:     out,
		JsonFormat: jsonFormat,
	})
}
