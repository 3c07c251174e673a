package emass

import (
	"strings"

	"github.com/secureonelabs/saf/internal/fsutil"
)

// WriteEnvFile stores cfg at path in dotenv format, readable only by the
// owner. The file is replaced atomically.
func WriteEnvFile(path string, cfg *Config) error {
	content := strings.Join(cfg.EnvLines(), "\n") + "\n"
	return fsutil.WriteFileAtomic(path, []byte(content), 0o600)
}
