package common

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// Substr returns at most size runes of str starting at rune start.
// A negative start counts as zero.
func Substr(str string, start, size int) string {
	runes := []rune(str)

	if start < 0 {
		start = 0
	}

	if start >= len(runes) {
		return ""
	}

	end := start + size
	if end > len(runes) {
		end = len(runes)
	}

	return string(runes[start:end])
}

// GetOutboundIP returns the preferred outbound ip of this machine
func GetOutboundIP() (net.IP, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return nil, err
	}

	defer conn.Close()

	localAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, errors.New("unexpected local address type")
	}

	return localAddr.IP, nil
}

// FileExists checks if a regular file exists
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) || err != nil {
		return false
	}

	return !info.IsDir()
}

// createDir creates a directory at the given path if it does not exist
func createDir(path string) error {
	_, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return err
		}
	}

	return nil
}

// SetupDataDir sets up the data directory and sub-folders
func SetupDataDir(dataDir string, paths []string) error {
	if err := createDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data dir: (%s): %w", dataDir, err)
	}

	for _, path := range paths {
		path := filepath.Join(dataDir, path)
		if err := createDir(path); err != nil {
			return fmt.Errorf("failed to create path: (%s): %w", path, err)
		}
	}

	return nil
}
