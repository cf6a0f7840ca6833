package corrections

import (
	"fmt"
	"os"

	domainerrors "github.com/Czaki/napari-release-tools/internal/domain/errors"
	"gopkg.in/yaml.v3"
)

// correctionFile mirrors the YAML layout:
//
//	login_to_name:
//	  - login: somelogin
//	    corrected_name: Some Name
type correctionFile struct {
	LoginToName []correctionRecord `yaml:"login_to_name"`
}

type correctionRecord struct {
	Login         string `yaml:"login"`
	CorrectedName string `yaml:"corrected_name"`
}

// Load reads a correction file and returns the login to display name
// mapping. A duplicate login is a load error; a missing file is one too,
// use LoadOptional for the default path.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading correction file: %w", err)
	}

	var file correctionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error decoding correction file: %w", err)
	}

	table := make(map[string]string, len(file.LoginToName))
	for _, record := range file.LoginToName {
		if _, exists := table[record.Login]; exists {
			return nil, domainerrors.NewDuplicateCorrectionError(record.Login)
		}
		table[record.Login] = record.CorrectedName
	}

	return table, nil
}

// LoadOptional behaves like Load but treats a missing file as an empty
// table, so a fresh checkout without a correction file still works.
func LoadOptional(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	return Load(path)
}
