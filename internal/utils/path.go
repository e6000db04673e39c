package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// DefaultDictPath is the system word list present on most unix installs.
const DefaultDictPath = "/usr/share/dict/words"

// PathResolver finds dictionaries and config files relative to the
// executable, the working directory and the user's config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordgram")
		}
		return filepath.Join(homeDir, ".config", "wordgram")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordgram")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordgram")
	default:
		return filepath.Join(homeDir, ".config", "wordgram")
	}
}

// DictCandidates lists where a dictionary named by the user may live, in order of preference.
func (pr *PathResolver) DictCandidates(userPath string) []string {
	if userPath == "" {
		userPath = DefaultDictPath
	}
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(pr.configDir, userPath),
	)
	return candidates
}

// GetDictPath resolves userPath to the first existing candidate.
// When none exists the first candidate is returned so the loader can report it.
func (pr *PathResolver) GetDictPath(userPath string) string {
	candidates := pr.DictCandidates(userPath)
	for _, path := range candidates {
		if PathExists(path) {
			log.Debugf("Found dictionary: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not found: %s", path)
	}
	return candidates[0]
}
