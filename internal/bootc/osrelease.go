// Where: internal/bootc/osrelease.go
// What: os-release parsing.
// Why: Show host identity in status output without shelling out.
package bootc

import (
	"bufio"
	"os"
	"strings"
)

// OSRelease holds the os-release fields this tool displays.
type OSRelease struct {
	ID         string
	Name       string
	PrettyName string
	VersionID  string
}

// ReadOSRelease parses an os-release style file. Values may be quoted.
func ReadOSRelease(path string) (*OSRelease, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[key] = strings.Trim(value, `"`)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &OSRelease{
		ID:         values["ID"],
		Name:       values["NAME"],
		PrettyName: values["PRETTY_NAME"],
		VersionID:  values["VERSION_ID"],
	}, nil
}
