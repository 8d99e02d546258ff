package rendering

import "fmt"

// TemplateMissingError reports a style whose template file is absent on disk.
// The HTTP layer maps it to a 400 response.
type TemplateMissingError struct {
	Path string
}

func (e *TemplateMissingError) Error() string {
	return fmt.Sprintf("template file not found: %s", e.Path)
}
