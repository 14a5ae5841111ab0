package runner

import (
	"os"
	"path/filepath"

	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
)

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

func init() {
	if err := validateDir(filepath.Join(getUserHomeDir(), ".config", "graphsumm")); err != nil {
		gologger.Error().Msgf("graphsumm config dir not found and failed to create got: %v", err)
	}
}

// validateDir checks if dir exists, creating it if not — the community
// prefix cache lives here (prefixes.Load).
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
