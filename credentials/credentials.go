// Package credentials stages a Google service-account key file into temporary
// storage so the genai client can pick it up via application default
// credentials.
package credentials

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/isc-ai/engine/config"
)

const credentialsFile = "google-credentials.json"

// Ensure materializes the configured credential payload into a file under the
// system temp directory and points GOOGLE_APPLICATION_CREDENTIALS at it.
//
// It is a no-op when a credential path is already configured or when no
// payload is present. Failures are logged and swallowed: generation calls
// will surface the auth error downstream instead. Concurrent calls may race
// writing the same path with the same content, which is harmless.
func Ensure(cfg *config.Config) {
	if cfg.CredentialsPath != "" {
		return
	}
	if cfg.CredentialsJSON == "" {
		return
	}

	content := cfg.CredentialsJSON
	if !json.Valid([]byte(content)) {
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			log.Printf("Credential error: payload is neither JSON nor base64: %v", err)
			return
		}
		content = string(decoded)
	}

	path := filepath.Join(os.TempDir(), credentialsFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		log.Printf("Credential error: failed to write %s: %v", path, err)
		return
	}

	if err := os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", path); err != nil {
		log.Printf("Credential error: failed to set GOOGLE_APPLICATION_CREDENTIALS: %v", err)
		return
	}
	cfg.CredentialsPath = path
}
