package reports

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed seed/dataset.yaml
var seedYAML []byte

// SeedDataset returns the dataset bundled with the binary.
func SeedDataset() (Dataset, error) {
	return LoadDataset(bytes.NewReader(seedYAML))
}

// LoadDatasetFile decodes a YAML dataset from path.
func LoadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("reports: open dataset: %w", err)
	}
	defer f.Close()
	return LoadDataset(f)
}

// LoadDataset decodes a YAML dataset and checks its identifiers.
func LoadDataset(r io.Reader) (Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, errors.New("reports: dataset is empty")
		}
		return Dataset{}, fmt.Errorf("reports: decode dataset: %w", err)
	}
	if err := ValidateDataset(ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// ValidateDataset rejects blank or duplicate identifiers. Dangling references
// between records are accepted and resolved leniently at query time.
func ValidateDataset(ds Dataset) error {
	var problems []string
	check := func(kind string, ids []string) {
		seen := make(map[string]struct{}, len(ids))
		for i, id := range ids {
			if strings.TrimSpace(id) == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: blank id", kind, i))
				continue
			}
			if _, ok := seen[id]; ok {
				problems = append(problems, fmt.Sprintf("%s[%d]: duplicate id %q", kind, i, id))
				continue
			}
			seen[id] = struct{}{}
		}
	}

	regionIDs := make([]string, len(ds.Regions))
	for i, r := range ds.Regions {
		regionIDs[i] = r.ID
	}
	supervisorIDs := make([]string, len(ds.Supervisors))
	for i, s := range ds.Supervisors {
		supervisorIDs[i] = s.ID
	}
	reportIDs := make([]string, len(ds.Reports))
	for i, r := range ds.Reports {
		reportIDs[i] = r.ID
	}
	employeeIDs := make([]string, len(ds.Employees))
	for i, e := range ds.Employees {
		employeeIDs[i] = e.ID
	}

	check("regions", regionIDs)
	check("supervisors", supervisorIDs)
	check("reports", reportIDs)
	check("employees", employeeIDs)

	if len(problems) > 0 {
		return fmt.Errorf("reports: invalid dataset: %s", strings.Join(problems, "; "))
	}
	return nil
}
