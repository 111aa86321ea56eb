package errors

import (
	"fmt"
)

var (
	ErrFileNotFound  = fmt.Errorf("import file not found")
	ErrParse         = fmt.Errorf("failed to parse import file")
	ErrUnknownEntity = fmt.Errorf("unknown entity type")
)
