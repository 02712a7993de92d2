package util

import (
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// BindJsonOrYaml decodes the JSON or YAML file at filePath into obj using obj's json tags.
// Unknown fields are rejected so that typos in a selection file do not silently widen it.
func BindJsonOrYaml(filePath string, obj interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed opening file %s", filePath)
	}
	if err := yaml.UnmarshalStrict(data, obj); err != nil {
		return errors.Wrapf(err, "failed to parse file %s", filePath)
	}
	return nil
}
