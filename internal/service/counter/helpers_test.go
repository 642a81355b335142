package counter

import (
	"os"

	"github.com/oshokin/mvi-reducer/internal/config"
)

// writeFile writes raw settings contents to path.
func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), config.DefaultFilePermissions)
}
